package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestTaskID_UnmarshalNumberAndString(t *testing.T) {
	var tasks []Task
	data := `[{"id":12,"title":"a","completed":false},{"id":"abc","title":"b","completed":true},{"title":"c"}]`
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TaskID{"12", "abc", ""}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("task %d: expected id %q, got %q", i, id, tasks[i].ID)
		}
	}
}

func TestTaskID_RejectsObjects(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &task); err == nil {
		t.Error("expected error for object id")
	}
}

func TestTaskID_Marshal(t *testing.T) {
	tests := map[TaskID]string{
		"7":   `7`,
		"abc": `"abc"`,
		"":    `""`,
	}
	for id, want := range tests {
		got, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %q: %v", id, err)
		}
		if string(got) != want {
			t.Errorf("marshal %q: expected %s, got %s", id, want, got)
		}
	}
}

func TestError_Is(t *testing.T) {
	notFound := &Error{Kind: KindServer, Op: "update", Status: 404}
	wrapped := fmt.Errorf("toggle: %w", notFound)

	if !errors.Is(wrapped, ErrServer) || !errors.Is(wrapped, ErrNotFound) {
		t.Error("expected server rejection and not found")
	}
	if errors.Is(wrapped, ErrNetwork) || errors.Is(wrapped, ErrParse) {
		t.Error("unexpected kind match")
	}

	serverErr := &Error{Kind: KindServer, Op: "list", Status: 500}
	if errors.Is(serverErr, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindServer, Op: "delete", Status: 500, Err: errors.New("boom")}
	if got := err.Error(); got != "delete: server rejection (status 500): boom" {
		t.Errorf("unexpected message %q", got)
	}
	err = &Error{Kind: KindNetwork, Op: "list"}
	if got := err.Error(); got != "list: network failure" {
		t.Errorf("unexpected message %q", got)
	}
}
