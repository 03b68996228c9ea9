// Package restapi implements the service.Service interface over the /todos/ REST collection.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gtodo/internal/config"
	"gtodo/internal/logging"
	"gtodo/internal/service"
)

const (
	// CollectionPath is the path of the task collection under the base URL.
	CollectionPath = "/todos/"

	// RequestIDHeader carries a per-request id for correlating logs.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failure body is kept for the error message.
	maxErrorBody = 512
)

// Client implements service.Service using plain HTTP and JSON.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *log.Logger
}

// New creates a client for the API configured in cfg.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.APIURL, http.DefaultClient, logger)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout.Duration
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url: %q", baseURL)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{base: u, http: httpClient, log: logger}, nil
}

// ListTasks returns the full collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, "list", http.MethodGet, c.collectionURL(), nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns a single task by id.
func (c *Client) GetTask(ctx context.Context, id service.TaskID) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "get", http.MethodGet, c.itemURL(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

type taskBody struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTask submits a new, not completed task.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	var task service.Task
	body := taskBody{Title: title, Completed: false}
	if err := c.do(ctx, "create", http.MethodPost, c.collectionURL(), body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces title and completed for the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id service.TaskID, title string, completed bool) (service.Task, error) {
	var task service.Task
	body := taskBody{Title: title, Completed: completed}
	if err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() string {
	return c.base.String() + CollectionPath
}

func (c *Client) itemURL(id service.TaskID) string {
	return c.base.String() + CollectionPath + url.PathEscape(id.String())
}

// do performs one request. A nil out skips reading the response body.
func (c *Client) do(ctx context.Context, op, method, target string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &service.Error{Kind: service.KindNetwork, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &service.Error{Kind: service.KindNetwork, Op: op, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.log.With("op", op, "request_id", reqID)
	start := time.Now()
	logger.Debug("request", "method", method, "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.Error{Kind: service.KindNetwork, Op: op, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	logger.Debug("response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var detail error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			detail = fmt.Errorf("%s", msg)
		}
		return &service.Error{Kind: service.KindServer, Op: op, Status: resp.StatusCode, Err: detail}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &service.Error{Kind: service.KindNetwork, Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := decode(data, out); err != nil {
		return &service.Error{Kind: service.KindParse, Op: op, Err: err}
	}
	return nil
}

// decode validates the body's shape and then unmarshals it into out.
func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := validateShape(raw); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the URL.
func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
