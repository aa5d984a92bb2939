// Package server exposes the task access layer over HTTP using gin. Server
// also satisfies the kratos transport.Server interface so it can run inside
// a kratos.App.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"

	"github.com/mesh-intelligence/taskboard/internal/tasks"
)

// DefaultAddress is used when no address option is given.
const DefaultAddress = ":8080"

var _ transport.Server = (*Server)(nil)

// Server is the taskboard HTTP server.
type Server struct {
	svc    *tasks.Service
	router *gin.Engine
	http   *http.Server
	logger log.Logger
	log    *log.Helper
	addr   string
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithLogger sets the logger used for access and error logs.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a server that serves svc.
func New(svc *tasks.Service, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		addr:   DefaultAddress,
		logger: log.GetLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = log.NewHelper(log.With(s.logger, "component", "http"))

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(s.log))

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/tasks")
	{
		api.GET("", s.handleList)
		api.POST("", s.handleCreate)
		api.GET("/:id", s.handleShow)
		api.PATCH("/:id", s.handleUpdate)
		api.DELETE("/:id", s.handleDelete)
		api.GET("/filter-by-status/:status", s.handleFilter)
	}

	s.router = router
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.addr
}

// Start listens and serves until Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }
	s.log.Infof("[HTTP] server listening on: %s", s.addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("[HTTP] server stopping")
	return s.http.Shutdown(ctx)
}
