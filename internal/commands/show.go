package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/exitcode"
	"gtodo/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints one task as the server currently has it.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show a task" }
func (c *ShowCmd) Usage() string      { return "gtodo show <n>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	client := newClient(env, errOut)
	task, code := resolveRef(ctx, client, args, errOut)
	if code != exitcode.Success {
		return code
	}

	fresh, err := client.Refresh(ctx, task.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.ForError(err)
	}

	output.FormatTaskDetail(out, fresh)
	return exitcode.Success
}
