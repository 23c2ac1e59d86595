// Package format provides formatting utilities for UI presentation.
package format

import (
	"fmt"
	"strings"
)

// StateSymbol returns a plain-text marker for a link state, used where no
// styling is available.
func StateSymbol(state string) string {
	switch strings.ToLower(state) {
	case "enabled":
		return "+"
	case "enabled-external":
		return "~"
	case "unmanaged":
		return "!"
	case "source-missing":
		return "x"
	default:
		return "-"
	}
}

// ShortRev abbreviates a revision to seven characters.
func ShortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NoOpMessage explains why an update recorded nothing.
func NoOpMessage(reason string) string {
	switch reason {
	case "latest-tag":
		return "Already at the latest tag. Use --force-tag to check it out again."
	case "unchanged":
		return "Already up to date. Use --force-record to record a generation anyway."
	default:
		return fmt.Sprintf("Nothing to do (%s).", reason)
	}
}

// Columns pads each row's cells to the widest cell of the column.
func Columns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}
