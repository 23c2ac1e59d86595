// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format selection and the output of each renderer

package ui_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/ui"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func sampleResult() *display.CommandResult {
	return &display.CommandResult{
		Command: "rollback list",
		Message: "[bold]2[/bold] generations",
		Generations: []display.DisplayGeneration{
			{ID: 2, Date: "2025-03-14 09:26:53", Revision: "0123456789abcdef", Description: "Update to fedcba9", Status: "active"},
			{ID: 1, Date: "2025-03-01 08:00:00", Revision: "aaaaaaa111", Description: "Update to 0123456", Status: "archived"},
		},
		Timestamp: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ui.Format
	}{
		{"", ui.FormatAuto},
		{"text", ui.FormatText},
		{"plain", ui.FormatText},
		{"JSON", ui.FormatJSON},
		{"yaml", ui.FormatYAML},
		{"yml", ui.FormatYAML},
		{"term", ui.FormatTerminal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ui.ParseFormat("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "yaml", ui.FormatYAML.String())
	assert.Equal(t, "unknown", ui.Format(99).String())
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderMessage("[success]done[/success]"))
	assert.Equal(t, "done\n", buf.String())
}

func TestNewRenderer_Unknown(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTextRenderer_Generations(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(sampleResult()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2 generations", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "ID  DATE                 COMMIT   DESCRIPTION", lines[2])
	assert.Equal(t, "2   2025-03-14 09:26:53  0123456  Update to fedcba9", lines[3])
	assert.Equal(t, "1   2025-03-01 08:00:00  aaaaaaa  Update to 0123456 (archived)", lines[4])
}

func TestTextRenderer_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	r, _ := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, r.RenderResult(&display.CommandResult{
		Generations: []display.DisplayGeneration{},
		Items:       []display.DisplayItem{},
	}))
	assert.Equal(t, "No generations recorded\n\nNo items configured\n", buf.String())
}

func TestTextRenderer_Items(t *testing.T) {
	var buf bytes.Buffer
	r, _ := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, r.RenderResult(&display.CommandResult{
		Items: []display.DisplayItem{
			{Name: "hypr", State: "enabled", Target: "/home/u/.config/hypr", LinkTarget: "/src/hypr"},
			{Name: "rofi", State: "enabled-external", Target: "/home/u/.config/rofi", LinkTarget: "/elsewhere"},
			{Name: "waybar", State: "unmanaged", Target: "/home/u/.config/waybar", Error: "declined"},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "+  hypr    enabled           /home/u/.config/hypr\n")
	assert.Contains(t, out, "~  rofi    enabled-external  /home/u/.config/rofi -> /elsewhere\n")
	assert.Contains(t, out, "!  waybar  unmanaged         /home/u/.config/waybar\n    error: declined\n")
}

func TestTextRenderer_Update(t *testing.T) {
	tests := []struct {
		name   string
		update *display.DisplayUpdate
		want   []string
	}{
		{
			name:   "recorded",
			update: &display.DisplayUpdate{Mode: "edge", Before: "aaaaaaa111", After: "bbbbbbb222", Generation: 3, Enabled: 5, Skipped: 1},
			want:   []string{"Mode:   edge", "Before: aaaaaaa", "After:  bbbbbbb", "Recorded generation 3", "Links:  5 enabled, 1 skipped"},
		},
		{
			name:   "no_op",
			update: &display.DisplayUpdate{Mode: "stable", Tag: "v2.0", Before: "ccc", After: "ccc", NoOp: "latest-tag"},
			want:   []string{"Tag:    v2.0", "Already at the latest tag."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, _ := ui.NewRenderer(ui.FormatText, &buf)
			require.NoError(t, r.RenderResult(&display.CommandResult{Update: tt.update}))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(sampleResult()))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "rollback list", got["command"])
	gens := got["generations"].([]interface{})
	require.Len(t, gens, 2)
	assert.Equal(t, "archived", gens[1].(map[string]interface{})["status"])
	assert.Equal(t, "0123456789abcdef", gens[0].(map[string]interface{})["revision"])
}

func TestJSONRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	r, _ := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "generation 9 not found").WithDetail("id", 9)))

	var got display.ErrorInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, float64(9), got.Details["id"])
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(sampleResult()))

	var got display.CommandResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Generations, 2)
	assert.Equal(t, 2, got.Generations[0].ID)
	assert.True(t, got.Generations[1].Archived())
	assert.Contains(t, buf.String(), "description: Update to fedcba9")
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	res := sampleResult()
	res.Items = []display.DisplayItem{
		{Name: "hypr", State: "disabled", Target: "/t/hypr"},
		{Name: "waybar", State: "enabled", Target: "/t/waybar"},
		{Name: "rofi", State: "source-missing", Target: "/t/rofi"},
	}
	res.Update = &display.DisplayUpdate{Mode: "edge", Before: "aaaaaaa111", After: "bbbbbbb222", Generation: 2}
	require.NoError(t, r.RenderResult(res))

	out := buf.String()
	assert.Contains(t, out, "2 generations")
	assert.Contains(t, out, "Update to fedcba9")
	assert.Contains(t, out, "not deployed")
	assert.Contains(t, out, "recorded generation 2")

	lines := strings.Split(out, "\n")
	lineFor := func(name string) string {
		for _, l := range lines {
			if strings.Contains(l, " "+name) {
				return l
			}
		}
		return ""
	}
	assert.True(t, strings.HasPrefix(lineFor("hypr"), "○ "), lineFor("hypr"))
	assert.True(t, strings.HasPrefix(lineFor("waybar"), "✓ "), lineFor("waybar"))
	assert.True(t, strings.HasPrefix(lineFor("rofi"), "✗ "), lineFor("rofi"))
}

func TestTerminalRenderer_ErrorDetails(t *testing.T) {
	var buf bytes.Buffer
	r, _ := ui.NewRenderer(ui.FormatTerminal, &buf)

	err := errors.New(errors.ErrResetFailed, "reset failed").
		WithDetail(errors.DetailExitCode, 128).
		WithDetail(errors.DetailOutput, "fatal: bad revision")
	require.NoError(t, r.RenderError(err))

	out := buf.String()
	assert.Contains(t, out, "[RESET_FAILED] reset failed")
	assert.Contains(t, out, "fatal: bad revision")
	assert.Contains(t, out, "exit_code: 128")
	assert.NotContains(t, out, "output:")
}
