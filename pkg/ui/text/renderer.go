// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotgen/pkg/style"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/arthur-debert/dotgen/pkg/ui/format"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a command result as plain text
func (r *Renderer) RenderResult(result *display.CommandResult) error {
	if result == nil {
		return nil
	}

	var sections []string
	if result.Message != "" {
		sections = append(sections, style.Strip(result.Message))
	}
	if result.Update != nil {
		sections = append(sections, Update(result.Update))
	}
	if result.Generations != nil {
		sections = append(sections, Generations(result.Generations))
	}
	if result.Items != nil {
		sections = append(sections, Items(result.Items))
	}

	_, err := fmt.Fprintln(r.output, strings.Join(sections, "\n\n"))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}

// Generations lays out ledger records one per line.
func Generations(gens []display.DisplayGeneration) string {
	if len(gens) == 0 {
		return "No generations recorded"
	}
	rows := [][]string{{"ID", "DATE", "COMMIT", "DESCRIPTION"}}
	for _, g := range gens {
		desc := g.Description
		if g.Archived() {
			desc += " (archived)"
		}
		rows = append(rows, []string{fmt.Sprint(g.ID), g.Date, format.ShortRev(g.Revision), desc})
	}
	return strings.Join(format.Columns(rows), "\n")
}

// Items lays out item states one per line.
func Items(items []display.DisplayItem) string {
	if len(items) == 0 {
		return "No items configured"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		target := it.Target
		if it.LinkTarget != "" && it.State != "enabled" {
			target += " -> " + it.LinkTarget
		}
		rows = append(rows, []string{format.StateSymbol(it.State), it.Name, it.State, target})
	}

	lines := format.Columns(rows)
	for i, it := range items {
		if it.Error != "" {
			lines[i] += "\n    error: " + it.Error
		}
	}
	return strings.Join(lines, "\n")
}

// Update summarises an update run.
func Update(u *display.DisplayUpdate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode:   %s\n", u.Mode)
	if u.Tag != "" {
		fmt.Fprintf(&b, "Tag:    %s\n", u.Tag)
	}
	fmt.Fprintf(&b, "Before: %s\n", format.ShortRev(u.Before))
	fmt.Fprintf(&b, "After:  %s", format.ShortRev(u.After))

	if u.NoOp != "" {
		fmt.Fprintf(&b, "\n%s", format.NoOpMessage(u.NoOp))
		return b.String()
	}
	if u.Generation > 0 {
		fmt.Fprintf(&b, "\nRecorded generation %d", u.Generation)
	}
	fmt.Fprintf(&b, "\nLinks:  %d enabled, %d skipped", u.Enabled, u.Skipped)
	return b.String()
}
