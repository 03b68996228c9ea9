// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"gtodo/internal/config"
	"gtodo/internal/service"
	"gtodo/internal/tasklist"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, api url, flags).
	Config *config.Config

	// Service is nil if NeedsBackend() returns false.
	Service service.Service

	// Log is the observability sink shared with the backend.
	Log *log.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the remote collection.
	// Commands like help and version return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// newClient builds a session client whose toggle notices go to errOut.
func newClient(env *Env, errOut io.Writer) *tasklist.Client {
	return tasklist.New(env.Service,
		tasklist.WithLogger(env.Log),
		tasklist.WithNotifier(tasklist.NotifierFunc(func(msg string) {
			io.WriteString(errOut, "notice: "+msg+"\n")
		})),
	)
}
