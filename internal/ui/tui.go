// Package ui provides the interactive terminal task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"gtodo/internal/output"
	"gtodo/internal/tasklist"
)

// NewNotices returns a Notifier whose messages the model shows as a
// blocking notice, and the channel the model reads them from.
func NewNotices() (tasklist.Notifier, <-chan string) {
	ch := make(chan string, 16)
	n := tasklist.NotifierFunc(func(msg string) {
		select {
		case ch <- msg:
		default:
			// a notice is already queued; the user sees that one
		}
	})
	return n, ch
}

// Run starts the TUI over client and blocks until the user quits.
func Run(ctx context.Context, client *tasklist.Client, notices <-chan string) error {
	model := NewModel(ctx, client, notices)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		// interrupted by signal
		return nil
	}
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Model is the bubbletea model. All task state lives in the client; the
// model only holds view state (focus, cursor, the open notice).
type Model struct {
	ctx     context.Context
	client  *tasklist.Client
	notices <-chan string

	input    textinput.Model
	focus    focusArea
	cursor   int
	notice   string
	inflight int
}

type loadedMsg struct{ err error }
type createdMsg struct{ err error }
type toggledMsg struct{ err error }
type removedMsg struct{ err error }
type noticeMsg string
type noticesClosedMsg struct{}

// NewModel creates a model with the input focused.
func NewModel(ctx context.Context, client *tasklist.Client, notices <-chan string) *Model {
	in := textinput.New()
	in.Placeholder = "Enter a task"
	in.Prompt = "> "
	in.SetValue(client.State().PendingInput)
	in.Focus()
	return &Model{
		ctx:     ctx,
		client:  client,
		notices: notices,
		input:   in,
		focus:   focusInput,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(), textinput.Blink}
	if m.notices != nil {
		cmds = append(cmds, waitForNotice(m.notices))
	}
	return tea.Batch(cmds...)
}

func waitForNotice(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return noticesClosedMsg{}
		}
		return noticeMsg(msg)
	}
}

func (m *Model) loadCmd() tea.Cmd {
	m.inflight++
	return func() tea.Msg {
		return loadedMsg{err: m.client.Load(m.ctx)}
	}
}

// submitCmd captures the title now; keys typed before the request runs
// belong to the next task.
func (m *Model) submitCmd() tea.Cmd {
	title := m.input.Value()
	if strings.TrimSpace(title) == "" {
		return nil
	}
	m.client.SetInput(title)
	m.inflight++
	return func() tea.Msg {
		_, _, err := m.client.Create(m.ctx, title)
		return createdMsg{err: err}
	}
}

func (m *Model) toggleCmd() tea.Cmd {
	visible := m.client.Visible()
	if m.cursor >= len(visible) {
		return nil
	}
	task := visible[m.cursor]
	m.inflight++
	return func() tea.Msg {
		_, err := m.client.Toggle(m.ctx, task)
		return toggledMsg{err: err}
	}
}

func (m *Model) removeCmd() tea.Cmd {
	visible := m.client.Visible()
	if m.cursor >= len(visible) {
		return nil
	}
	id := visible[m.cursor].ID
	m.inflight++
	return func() tea.Msg {
		return removedMsg{err: m.client.Remove(m.ctx, id)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case noticeMsg:
		m.notice = string(msg)
		return m, waitForNotice(m.notices)
	case noticesClosedMsg:
		return m, nil
	case loadedMsg:
		m.done()
	case createdMsg:
		m.done()
		if msg.err == nil {
			m.input.SetValue(m.client.State().PendingInput)
		}
	case toggledMsg:
		m.done()
	case removedMsg:
		m.done()
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// done records a finished request and keeps the cursor on a visible row.
func (m *Model) done() {
	if m.inflight > 0 {
		m.inflight--
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.client.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// An open notice swallows everything until dismissed.
	if m.notice != "" {
		if key == "enter" || key == "esc" {
			m.notice = ""
		}
		return m, nil
	}

	if key == "tab" {
		if m.focus == focusInput {
			return m, m.setFocus(focusList)
		}
		return m, m.setFocus(focusInput)
	}

	if m.focus == focusInput {
		switch key {
		case "enter":
			return m, m.submitCmd()
		case "esc":
			return m, m.setFocus(focusList)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.client.SetInput(m.input.Value())
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.client.Visible())-1 {
			m.cursor++
		}
	case " ", "x", "enter":
		return m, m.toggleCmd()
	case "d", "delete":
		return m, m.removeCmd()
	case "1":
		m.client.SetFilter(tasklist.FilterAll)
		m.clampCursor()
	case "2":
		m.client.SetFilter(tasklist.FilterCompleted)
		m.clampCursor()
	case "3":
		m.client.SetFilter(tasklist.FilterPending)
		m.clampCursor()
	case "t":
		m.client.SetTheme(m.client.State().Theme.Toggle())
	case "r", "f5":
		return m, m.loadCmd()
	case "a", "i", "/":
		return m, m.setFocus(focusInput)
	}
	return m, nil
}

var filterTabs = []struct {
	filter tasklist.Filter
	label  string
}{
	{tasklist.FilterAll, "1 All"},
	{tasklist.FilterCompleted, "2 Completed"},
	{tasklist.FilterPending, "3 Pending"},
}

func (m *Model) View() string {
	st := m.client.State()
	s := newStyles(st.Theme)
	var b strings.Builder

	themeLabel := "dark mode"
	if st.Theme == tasklist.ThemeDark {
		themeLabel = "light mode"
	}
	b.WriteString(s.title.Render("To-Do List"))
	b.WriteString("  " + s.muted.Render("t: "+themeLabel) + "\n\n")

	b.WriteString(m.input.View() + "\n\n")

	tabs := make([]string, 0, len(filterTabs))
	for _, tab := range filterTabs {
		if tab.filter == st.Filter {
			tabs = append(tabs, s.activeTab.Render(tab.label))
		} else {
			tabs = append(tabs, s.tab.Render(tab.label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	if m.notice != "" {
		b.WriteString(s.notice.Render(m.notice+"\n\nenter to dismiss") + "\n")
		return s.app.Render(b.String())
	}

	visible := st.Visible()
	switch {
	case st.Loading:
		b.WriteString(s.muted.Render("Loading...") + "\n")
	case len(visible) == 0:
		b.WriteString(s.muted.Render("No tasks.") + "\n")
	}
	for i, task := range visible {
		pointer := "  "
		if m.focus == focusList && i == m.cursor {
			pointer = s.cursor.Render("> ")
		}
		line := output.Checkbox(task.Completed) + " " + output.NormalizeTitle(task.Title)
		if task.Completed {
			line = s.done.Render(line)
		} else {
			line = s.item.Render(line)
		}
		b.WriteString(pointer + line + "\n")
	}

	b.WriteString("\n")
	if m.inflight > 0 {
		b.WriteString(s.muted.Render(fmt.Sprintf("%d request(s) in flight", m.inflight)) + "\n")
	}
	b.WriteString(s.muted.Render(footer(m.focus)) + "\n")
	return s.app.Render(b.String())
}

func footer(f focusArea) string {
	if f == focusInput {
		return "enter add | tab/esc list | ctrl+c quit"
	}
	return "space toggle | d delete | 1/2/3 filter | t theme | r reload | a add | q quit"
}
