package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/exitcode"
	"gtodo/internal/logging"
	"gtodo/internal/tasklist"
	"gtodo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive terminal UI.
type UICmd struct {
	theme string
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive task list" }
func (c *UICmd) Usage() string      { return "gtodo ui [--theme light|dark]" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.theme, "theme", "", "")
}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	themeName := env.Config.Theme
	if c.theme != "" {
		themeName = c.theme
	}
	theme, err := tasklist.ParseTheme(themeName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: ui requires a TTY")
		return exitcode.UserError
	}

	// The alt screen owns the terminal; logs go to a file.
	if env.Log != nil {
		if err := env.Config.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		f, err := logging.Redirect(env.Log, env.Config.LogPath())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		defer f.Close()
	}

	notifier, notices := ui.NewNotices()
	client := tasklist.New(env.Service,
		tasklist.WithLogger(env.Log),
		tasklist.WithNotifier(notifier),
		tasklist.WithState(tasklist.State{Loading: true, Theme: theme}),
	)

	if err := ui.Run(ctx, client, notices); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
