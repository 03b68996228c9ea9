// Package tasklist keeps the local task list in sync with the remote collection.
//
// State is a plain value. Every transition is a method on State that returns a
// new State and never mutates the receiver's slices, so snapshots handed to a
// renderer stay valid while later responses are applied.
package tasklist

import (
	"fmt"
	"strings"

	"gtodo/internal/service"
)

// Filter selects which tasks are visible. It is never sent to the server.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterPending
)

func (f Filter) String() string {
	switch f {
	case FilterCompleted:
		return "completed"
	case FilterPending:
		return "pending"
	default:
		return "all"
	}
}

// ParseFilter parses "all", "completed" or "pending" (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "pending", "open":
		return FilterPending, nil
	}
	return FilterAll, fmt.Errorf("invalid filter: %s", s)
}

// Theme is the display theme. It is local only.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme parses "light" or "dark" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("invalid theme: %s", s)
}

// State is the client-side view of the collection for one session.
type State struct {
	// Tasks is in arrival order of the last full load, with created tasks appended.
	Tasks []service.Task

	// PendingInput is the title being composed for a new task.
	PendingInput string

	Filter Filter
	Theme  Theme

	// Loading is true until the first load finishes, successfully or not.
	Loading bool
}

// Loaded replaces the task list wholesale.
func (s State) Loaded(tasks []service.Task) State {
	s.Tasks = append([]service.Task(nil), tasks...)
	s.Loading = false
	return s
}

// LoadFailed ends the loading phase and keeps the current tasks.
func (s State) LoadFailed() State {
	s.Loading = false
	return s
}

// Created appends the server record. The pending input is cleared only if
// it still holds the submitted title, so a draft typed since is kept.
func (s State) Created(task service.Task, submitted string) State {
	tasks := make([]service.Task, 0, len(s.Tasks)+1)
	tasks = append(tasks, s.Tasks...)
	s.Tasks = append(tasks, task)
	if s.PendingInput == submitted {
		s.PendingInput = ""
	}
	return s
}

// Removed drops every entry with the given id. A missing id is not an error.
func (s State) Removed(id service.TaskID) State {
	tasks := make([]service.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.Tasks = tasks
	return s
}

// Updated replaces the entry whose id matches task with the full record.
func (s State) Updated(task service.Task) State {
	tasks := make([]service.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ID == task.ID {
			t = task
		}
		tasks[i] = t
	}
	s.Tasks = tasks
	return s
}

// WithFilter sets the filter mode.
func (s State) WithFilter(f Filter) State {
	s.Filter = f
	return s
}

// WithTheme sets the display theme.
func (s State) WithTheme(t Theme) State {
	s.Theme = t
	return s
}

// WithInput sets the pending input.
func (s State) WithInput(in string) State {
	s.PendingInput = in
	return s
}

// Visible returns the tasks selected by the current filter.
func (s State) Visible() []service.Task {
	return VisibleTasks(s.Tasks, s.Filter)
}

// VisibleTasks returns the subsequence of tasks selected by f, in order.
func VisibleTasks(tasks []service.Task, f Filter) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Find returns the task with the given id.
func (s State) Find(id service.TaskID) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
