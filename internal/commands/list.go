package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/exitcode"
	"gtodo/internal/output"
	"gtodo/internal/service"
	"gtodo/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `gtodo` (no args) and `gtodo list --filter <mode>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks; mode is all, completed or pending" }
func (c *ListCmd) Usage() string      { return "gtodo list [-f|--filter <mode>]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := tasklist.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	client := newClient(env, errOut)
	if err := client.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	client.SetFilter(filter)
	st := client.State()

	visible := st.Visible()
	if filter != tasklist.FilterAll {
		output.FormatFilterHeader(out, filter.String(), len(visible), len(st.Tasks))
	}

	if len(visible) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Numbers are positions in the full list so done/rm work after filtering.
	numbers := make(map[service.TaskID]int, len(st.Tasks))
	for i, task := range st.Tasks {
		if _, ok := numbers[task.ID]; !ok {
			numbers[task.ID] = i + 1
		}
	}
	for _, task := range visible {
		output.FormatTask(out, numbers[task.ID], task)
	}

	return exitcode.Success
}
