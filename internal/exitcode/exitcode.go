// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"gtodo/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task number).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// BackendError indicates a network, server, or response format error.
	BackendError = 3
)

// ForError maps an operation error to an exit code.
// A 404 from the server means the referenced task is gone, which is the
// user's problem rather than the backend's.
func ForError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrNotFound):
		return UserError
	default:
		return BackendError
	}
}
