// pkg/ui/converter/convert_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test conversion of ledger records, item states and update results

package converter_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/converter"
	"github.com/arthur-debert/dotgen/pkg/update"
	"github.com/arthur-debert/dotgen/pkg/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerations(t *testing.T) {
	gens := converter.Generations([]types.Generation{
		{ID: 2, Date: time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local), SourceRevision: "abc", Description: "Update to def", Status: types.StatusActive},
		{ID: 1, SourceRevision: "xyz", Status: types.StatusArchived},
	})

	require.Len(t, gens, 2)
	assert.Equal(t, 2, gens[0].ID)
	assert.Equal(t, "2025-01-02 03:04:05", gens[0].Date)
	assert.Equal(t, "abc", gens[0].Revision)
	assert.False(t, gens[0].Archived())
	assert.True(t, gens[1].Archived())
}

func TestItems_SortsAndAttachesFailures(t *testing.T) {
	statuses := []types.ItemStatus{
		{Item: types.ManagedItem{Name: "nvim", Group: types.GroupExtra}, State: types.LinkDisabled},
		{Item: types.ManagedItem{Name: "waybar", Group: types.GroupMinimal}, State: types.LinkUnmanaged},
		{Item: types.ManagedItem{Name: "hypr", Group: types.GroupMinimal, Target: "/t/hypr"}, State: types.LinkEnabled, LinkTarget: "/s/hypr"},
	}
	batch := &links.BatchResult{Failed: []links.ItemFailure{{Name: "waybar", Err: stderrors.New("declined")}}}

	items := converter.Items(statuses, batch)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"hypr", "waybar", "nvim"}, []string{items[0].Name, items[1].Name, items[2].Name})
	assert.Equal(t, "enabled", items[0].State)
	assert.Equal(t, "/s/hypr", items[0].LinkTarget)
	assert.Equal(t, "declined", items[1].Error)
	assert.Empty(t, items[2].Error)
}

func TestUpdate(t *testing.T) {
	assert.Nil(t, converter.Update(nil))

	gen := types.Generation{ID: 4}
	d := converter.Update(&update.Result{
		Mode:       update.ModeStable,
		Before:     "aaa",
		After:      "bbb",
		Tag:        &vcs.Tag{Name: "v1.2", Revision: "bbb"},
		Generation: &gen,
		Enabled:    &links.BatchResult{Succeeded: []string{"hypr", "rofi"}, Skipped: []string{"nvim"}},
	})

	assert.Equal(t, "stable", d.Mode)
	assert.Equal(t, "v1.2", d.Tag)
	assert.Equal(t, 4, d.Generation)
	assert.Equal(t, 2, d.Enabled)
	assert.Equal(t, 1, d.Skipped)
	assert.Empty(t, d.NoOp)
}

func TestResult(t *testing.T) {
	r := converter.Result("update", "done")
	assert.Equal(t, "update", r.Command)
	assert.Equal(t, "done", r.Message)
	assert.False(t, r.Timestamp.IsZero())
}
