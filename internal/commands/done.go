package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/exitcode"
	"gtodo/internal/service"
	"gtodo/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Toggle a task's completed flag" }
func (c *DoneCmd) Usage() string      { return "gtodo done <n>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	client := newClient(env, errOut)
	task, code := resolveRef(ctx, client, args, errOut)
	if code != exitcode.Success {
		return code
	}

	updated, err := client.Toggle(ctx, task)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.ForError(err)
	}

	if !env.Config.Quiet {
		if updated.Completed {
			fmt.Fprintln(out, "ok completed")
		} else {
			fmt.Fprintln(out, "ok pending")
		}
	}
	return exitcode.Success
}

// resolveRef parses a task number from args, loads the list and returns the
// referenced task. On failure it reports to errOut and returns the exit code.
func resolveRef(ctx context.Context, client *tasklist.Client, args []string, errOut io.Writer) (service.Task, int) {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}

	if err := client.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.Task{}, exitcode.BackendError
	}

	task, err := taskByNumber(client.State().Tasks, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
