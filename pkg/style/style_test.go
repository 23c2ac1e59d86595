// pkg/style/style_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test markup rendering and link state styling

package style_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotgen/pkg/style"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "nothing to do", "nothing to do"},
		{"single_tag", "[success]done[/success]", "done"},
		{"two_tags", "[bold]3[/bold] items [muted]skipped[/muted]", "3 items skipped"},
		{"nested", "[bold]rev [rev]abc1234[/rev][/bold]", "rev abc1234"},
		{"unknown_tag", "[blink]x[/blink]", "[blink]x[/blink]"},
		{"unclosed", "[error]oops", "[error]oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, style.Render(tt.input))
		})
	}
}

func TestStateStyling_CoversEveryState(t *testing.T) {
	states := []types.LinkState{
		types.LinkEnabled,
		types.LinkEnabledExternal,
		types.LinkUnmanaged,
		types.LinkDisabled,
		types.LinkSourceMissing,
	}

	for _, s := range states {
		t.Run(string(s), func(t *testing.T) {
			assert.NotEmpty(t, style.StateDescriptions[s])
			assert.NotNil(t, style.StateBadge(s))
			assert.NotEmpty(t, style.StateIndicator(s))
			assert.Equal(t, string(s), style.StateStyle(s).Render(string(s)))
		})
	}

	assert.Equal(t, style.SuccessIndicator, style.StateIndicator(types.LinkEnabled))
	assert.Equal(t, style.ErrorIndicator, style.StateIndicator(types.LinkSourceMissing))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "hypr", style.Indent("hypr", 0))
	assert.Equal(t, "    hypr", style.Indent("hypr", 2))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "Updated to 0a1b2c3 [x]", style.Strip("Updated to [rev]0a1b2c3[/rev] [x]"))
}
