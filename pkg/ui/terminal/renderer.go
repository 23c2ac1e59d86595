// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/style"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/arthur-debert/dotgen/pkg/ui/format"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides rich terminal output using lipgloss and pterm styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a command result with rich terminal formatting
func (r *Renderer) RenderResult(result *display.CommandResult) error {
	if result == nil {
		return nil
	}

	var sections []string
	if result.Message != "" {
		sections = append(sections, style.Render(result.Message))
	}
	if result.Update != nil {
		sections = append(sections, r.update(result.Update))
	}
	if result.Generations != nil {
		sections = append(sections, r.generations(result.Generations))
	}
	if result.Items != nil {
		sections = append(sections, r.items(result.Items))
	}

	_, err := fmt.Fprintln(r.output, strings.Join(sections, "\n\n"))
	return err
}

// RenderError renders the error and its details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %v\n", style.ErrorIndicator, style.ErrorStyle.Render("Error:"), err)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		if k != errors.DetailOutput {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(style.Indent(style.MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])), 1))
		b.WriteString("\n")
	}

	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a message with markup applied
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}

func (r *Renderer) generations(gens []display.DisplayGeneration) string {
	if len(gens) == 0 {
		return style.MutedStyle.Render("No generations recorded")
	}

	rows := [][]string{{"ID", "DATE", "COMMIT", "DESCRIPTION"}}
	for _, g := range gens {
		rows = append(rows, []string{fmt.Sprint(g.ID), g.Date, format.ShortRev(g.Revision), g.Description})
	}
	lines := format.Columns(rows)

	out := make([]string, 0, len(lines))
	out = append(out, style.HeaderCellStyle.Render(lines[0]))
	for i, g := range gens {
		line := lines[i+1]
		if g.Archived() {
			line = style.ArchivedRowStyle.Render(line)
		} else {
			line = style.NormalStyle.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) items(items []display.DisplayItem) string {
	if len(items) == 0 {
		return style.MutedStyle.Render("No items configured")
	}

	width := 0
	for _, it := range items {
		width = max(width, lipgloss.Width(it.Name))
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		state := types.LinkState(it.State)
		badge := style.StateBadge(state).Sprint(fmt.Sprintf(" %-16s ", it.State))
		name := style.StateStyle(state).Render(fmt.Sprintf("%-*s", width, it.Name))

		detail := style.PathStyle.Render(it.Target)
		if it.LinkTarget != "" && state != types.LinkEnabled {
			detail += style.MutedStyle.Render(" -> " + it.LinkTarget)
		} else if desc := style.StateDescriptions[state]; desc != "" && state != types.LinkEnabled {
			detail += style.MutedStyle.Render(" (" + desc + ")")
		}

		line := fmt.Sprintf("%s %s %s  %s", style.StateIndicator(state), badge, name, detail)
		if it.Error != "" {
			line += "\n" + style.Indent(style.ErrorStyle.Render(it.Error), 2)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) update(u *display.DisplayUpdate) string {
	rev := func(s string) string { return style.RevisionStyle.Render(format.ShortRev(s)) }

	lines := []string{
		style.SubtitleStyle.Render("Update (" + u.Mode + ")"),
		fmt.Sprintf("%s -> %s", rev(u.Before), rev(u.After)),
	}
	if u.Tag != "" {
		lines = append(lines, "tag "+style.CodeStyle.Render(u.Tag))
	}

	switch {
	case u.NoOp != "":
		lines = append(lines, style.InfoIndicator+" "+style.MutedStyle.Render(format.NoOpMessage(u.NoOp)))
	default:
		if u.Generation > 0 {
			lines = append(lines, fmt.Sprintf("%s recorded generation %d", style.SuccessIndicator, u.Generation))
		}
		lines = append(lines, fmt.Sprintf("%s %d links enabled, %d skipped", style.InfoIndicator, u.Enabled, u.Skipped))
	}

	return style.BoxStyle.Render(strings.Join(lines, "\n"))
}
