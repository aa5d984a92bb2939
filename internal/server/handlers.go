package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/taskboard/internal/validate"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// taskPayload is the request body for create and update. Pointer fields
// distinguish an absent field from an empty one. Values are trimmed before
// validation and storage.
type taskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (p taskPayload) fields() types.TaskFields {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	return types.TaskFields{
		Title:       deref(p.Title),
		Description: deref(p.Description),
		Status:      deref(p.Status),
	}.Trimmed()
}

func (p taskPayload) patch() types.TaskPatch {
	return types.TaskPatch{Title: p.Title, Description: p.Description, Status: p.Status}.Trimmed()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleList(c *gin.Context) {
	list, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleShow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := s.svc.Fetch(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreate(c *gin.Context) {
	var payload taskPayload
	if !bindPayload(c, &payload) {
		return
	}

	fields := payload.fields()
	if err := validate.Create(fields); err != nil {
		s.writeError(c, err)
		return
	}

	task, err := s.svc.Create(c.Request.Context(), fields)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload taskPayload
	if !bindPayload(c, &payload) {
		return
	}

	patch := payload.patch()
	if err := validate.Update(patch); err != nil {
		s.writeError(c, err)
		return
	}

	task, err := s.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := s.svc.Remove(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleFilter(c *gin.Context) {
	list, err := s.svc.FilterByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// parseID reads the :id path segment. A malformed or non-positive id cannot
// name a task, so it is answered with 404.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": types.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// bindPayload decodes a JSON body. An empty body is an empty payload and is
// left for validation to reject.
func bindPayload(c *gin.Context, payload *taskPayload) bool {
	if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps an error from validation or the access layer to a status.
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID):
		c.JSON(http.StatusNotFound, gin.H{"error": types.ErrNotFound.Error()})
	default:
		s.log.WithContext(c.Request.Context()).Errorw(
			"msg", "storage failure",
			"route", c.FullPath(),
			"request.id", c.GetString(ctxKeyRequestID),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
