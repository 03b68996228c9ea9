package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote operation.
type Kind int

const (
	// KindNetwork means the request could not complete.
	KindNetwork Kind = iota + 1

	// KindServer means the response status indicated failure.
	KindServer

	// KindParse means the response body did not have the expected shape.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindServer:
		return "server rejection"
	case KindParse:
		return "parse failure"
	default:
		return "unknown failure"
	}
}

// Sentinels for errors.Is against an *Error of the matching kind.
var (
	ErrNetwork = errors.New("network failure")
	ErrServer  = errors.New("server rejection")
	ErrParse   = errors.New("parse failure")
)

// ErrNotFound matches a server rejection with status 404.
var ErrNotFound = errors.New("not found")

// Error is returned by Service implementations for any failed operation.
type Error struct {
	Kind   Kind
	Op     string // "list", "get", "create", "update", "delete"
	Status int    // HTTP status for KindServer, 0 otherwise
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrParse:
		return e.Kind == KindParse
	case ErrNotFound:
		return e.Kind == KindServer && e.Status == 404
	}
	return false
}
