package style

import (
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// StateDescriptions are the one-line explanations shown next to link states.
var StateDescriptions = map[types.LinkState]string{
	types.LinkEnabled:         "linked to the repository",
	types.LinkEnabledExternal: "symlink points elsewhere",
	types.LinkUnmanaged:       "target exists and is not a link",
	types.LinkDisabled:        "not deployed",
	types.LinkSourceMissing:   "repository has no copy",
}

// StateColor returns the color for a link state.
func StateColor(state types.LinkState) lipgloss.TerminalColor {
	switch state {
	case types.LinkEnabled:
		return EnabledColor
	case types.LinkEnabledExternal:
		return ExternalColor
	case types.LinkUnmanaged:
		return UnmanagedColor
	case types.LinkSourceMissing:
		return SourceMissingColor
	default:
		return DisabledColor
	}
}

// StateStyle returns the lipgloss style used for a link state label.
func StateStyle(state types.LinkState) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(StateColor(state))
	if state == types.LinkEnabled || state == types.LinkSourceMissing {
		s = s.Bold(true)
	}
	return s
}

// StateBadge returns the pterm style for the short badge printed before an
// item name in status listings.
func StateBadge(state types.LinkState) *pterm.Style {
	switch state {
	case types.LinkEnabled:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case types.LinkEnabledExternal:
		return pterm.NewStyle(pterm.BgMagenta, pterm.FgWhite)
	case types.LinkUnmanaged:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.LinkSourceMissing:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StateIndicator is the single-character marker for a link state.
func StateIndicator(state types.LinkState) string {
	switch state {
	case types.LinkEnabled:
		return SuccessIndicator
	case types.LinkEnabledExternal, types.LinkUnmanaged:
		return WarningIndicator
	case types.LinkSourceMissing:
		return ErrorIndicator
	default:
		return PendingIndicator
	}
}
