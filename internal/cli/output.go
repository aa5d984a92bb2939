package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// printTaskTable prints tasks in a human-readable table format.
func printTaskTable(w io.Writer, list []types.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE")
	fmt.Fprintln(tw, "--\t------\t-----")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Status, truncate(t.Title, 50))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d task(s)\n", len(list))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printTask prints one task with all of its fields.
func printTask(w io.Writer, t types.Task) {
	fmt.Fprintf(w, "ID:          %d\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Status:      %s\n", t.Status)
	fmt.Fprintf(w, "Description: %s\n", t.Description)
}

// cliNotifier writes store notifications to the terminal.
type cliNotifier struct {
	w io.Writer
}

func (n cliNotifier) Success(msg string) { fmt.Fprintln(n.w, msg) }
func (n cliNotifier) Error(msg string)   { fmt.Fprintln(n.w, "error:", msg) }

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(ctx context.Context, title, text string) (bool, error) {
	fmt.Fprintf(p.out, "%s %s [y/N]: ", title, text)

	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
