// Package client talks to a taskboard server and keeps a local, reconciled
// copy of its task list.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// DefaultTimeout bounds a single API call when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// API is the set of remote task operations the Store depends on.
type API interface {
	List(ctx context.Context) ([]types.Task, error)
	Show(ctx context.Context, id int64) (*types.Task, error)
	Create(ctx context.Context, fields types.TaskFields) (*types.Task, error)
	Update(ctx context.Context, id int64, patch types.TaskPatch) (*types.Task, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, status string) ([]types.Task, error)
}

var _ API = (*Client)(nil)

// APIError is a non-success response that is neither a validation failure
// nor decodable as a task.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, types.ErrNotFound) match a 404.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return types.ErrNotFound
	}
	return nil
}

// Client is a typed HTTP client for the task routes.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// List returns every task.
func (c *Client) List(ctx context.Context) ([]types.Task, error) {
	var out []types.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Show returns one task.
func (c *Client) Show(ctx context.Context, id int64) (*types.Task, error) {
	var out types.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create sends a new task and returns the stored entity.
func (c *Client) Create(ctx context.Context, fields types.TaskFields) (*types.Task, error) {
	var out types.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update and returns the stored entity.
func (c *Client) Update(ctx context.Context, id int64, patch types.TaskPatch) (*types.Task, error) {
	var out types.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// Filter returns tasks with the given status. "All" returns every task.
func (c *Client) Filter(ctx context.Context, status string) ([]types.Task, error) {
	var out []types.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/filter-by-status/"+url.PathEscape(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// do sends one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns an error response into *types.ValidationError for 422
// and *APIError otherwise.
func decodeError(status int, data []byte) error {
	if status == http.StatusUnprocessableEntity {
		fields := map[string][]string{}
		if err := json.Unmarshal(data, &fields); err == nil && len(fields) > 0 {
			return &types.ValidationError{Fields: fields}
		}
	}

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}
