package tasklist

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"gtodo/internal/logging"
	"gtodo/internal/service"
)

// ToggleFailedNotice is shown to the user when an update is rejected.
const ToggleFailedNotice = "Something went wrong when updating the task."

// Notifier surfaces a blocking notice to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the observability sink for failed operations.
// A nil logger keeps the default, which discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNotifier sets where toggle failures are surfaced.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notify = n
	}
}

// WithState seeds the initial state (theme, filter, cached tasks).
func WithState(s State) Option {
	return func(c *Client) {
		c.state = s
	}
}

// Client owns the session State and reconciles it with a service.Service.
//
// Operations may run concurrently. The request runs without the lock held;
// the reducer is applied to the current state when the response arrives, so
// overlapping operations take effect in completion order and a later Load
// replaces whatever earlier responses did.
type Client struct {
	svc    service.Service
	log    *log.Logger
	notify Notifier

	mu    sync.Mutex
	state State
}

// New creates a client in the loading state.
func New(svc service.Service, opts ...Option) *Client {
	c := &Client{
		svc:   svc,
		log:   logging.Discard(),
		state: State{Loading: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible returns the tasks selected by the current filter.
func (c *Client) Visible() []service.Task {
	return c.State().Visible()
}

func (c *Client) apply(fn func(State) State) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
}

// Load fetches the full collection and replaces the local list.
// On failure the list is unchanged and the error is logged and returned.
func (c *Client) Load(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.apply(State.LoadFailed)
		c.log.Error("failed to load tasks", "err", err)
		return err
	}
	c.apply(func(s State) State { return s.Loaded(tasks) })
	c.log.Debug("loaded tasks", "count", len(tasks))
	return nil
}

// Create submits a new task. Empty or whitespace-only titles are ignored
// without a request. On success the pending input is cleared if it still
// equals title; on failure it is kept.
// Returns created=false when nothing was submitted or the request failed.
func (c *Client) Create(ctx context.Context, title string) (task service.Task, created bool, err error) {
	if strings.TrimSpace(title) == "" {
		return service.Task{}, false, nil
	}
	task, err = c.svc.CreateTask(ctx, title)
	if err != nil {
		c.log.Error("failed to create task", "title", title, "err", err)
		return service.Task{}, false, err
	}
	c.apply(func(s State) State { return s.Created(task, title) })
	c.log.Debug("created task", "id", task.ID)
	return task, true, nil
}

// Remove deletes a task remotely, then locally. A task missing locally is
// treated as already removed. On failure the local list is unchanged.
func (c *Client) Remove(ctx context.Context, id service.TaskID) error {
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.log.Error("failed to delete task", "id", id, "err", err)
		return err
	}
	c.apply(func(s State) State { return s.Removed(id) })
	c.log.Debug("deleted task", "id", id)
	return nil
}

// Toggle flips the completion flag of task as the caller knows it and
// replaces the local entry with the server's record. Failures are logged
// and also surfaced through the Notifier.
func (c *Client) Toggle(ctx context.Context, task service.Task) (service.Task, error) {
	updated, err := c.svc.UpdateTask(ctx, task.ID, task.Title, !task.Completed)
	if err != nil {
		c.log.Error("failed to update task", "id", task.ID, "err", err)
		if c.notify != nil {
			c.notify.Notify(ToggleFailedNotice)
		}
		return service.Task{}, err
	}
	c.apply(func(s State) State { return s.Updated(updated) })
	c.log.Debug("updated task", "id", updated.ID, "completed", updated.Completed)
	return updated, nil
}

// Refresh fetches one task and replaces its local entry if present.
func (c *Client) Refresh(ctx context.Context, id service.TaskID) (service.Task, error) {
	task, err := c.svc.GetTask(ctx, id)
	if err != nil {
		c.log.Error("failed to fetch task", "id", id, "err", err)
		return service.Task{}, err
	}
	c.apply(func(s State) State { return s.Updated(task) })
	return task, nil
}

// SetFilter sets the view filter. No network activity.
func (c *Client) SetFilter(f Filter) {
	c.apply(func(s State) State { return s.WithFilter(f) })
}

// SetTheme sets the display theme. No network activity.
func (c *Client) SetTheme(t Theme) {
	c.apply(func(s State) State { return s.WithTheme(t) })
}

// SetInput records the title being composed.
func (c *Client) SetInput(in string) {
	c.apply(func(s State) State { return s.WithInput(in) })
}
