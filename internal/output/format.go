// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"gtodo/internal/service"
)

const (
	// ListSeparator is the separator line around the filter header.
	ListSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}\n" (4-wide right-aligned number, two spaces, checkbox, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeTitle(task.Title))
}

// FormatFilterHeader formats the header printed above a filtered list.
func FormatFilterHeader(w io.Writer, filter string, shown, total int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d of %d)\n", filter, shown, total)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTaskDetail formats a single task as key/value lines.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:        %s\n", task.ID)
	fmt.Fprintf(w, "title:     %s\n", NormalizeTitle(task.Title))
	fmt.Fprintf(w, "completed: %t\n", task.Completed)
}

// Checkbox renders the completion flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
