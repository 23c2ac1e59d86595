// Package converter turns orchestrator results into display models.
package converter

import (
	"sort"
	"time"

	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/arthur-debert/dotgen/pkg/update"
)

// Generations converts ledger records, keeping their order.
func Generations(gens []types.Generation) []display.DisplayGeneration {
	out := make([]display.DisplayGeneration, 0, len(gens))
	for _, g := range gens {
		out = append(out, Generation(g))
	}
	return out
}

// Generation converts a single ledger record.
func Generation(g types.Generation) display.DisplayGeneration {
	return display.DisplayGeneration{
		ID:          g.ID,
		Date:        g.Date.Format(types.DateLayout),
		Revision:    g.SourceRevision,
		Description: g.Description,
		Status:      string(g.Status),
	}
}

// Items converts item statuses, sorted minimal group first then by name.
// Failures from a batch are attached to the matching item.
func Items(statuses []types.ItemStatus, batch *links.BatchResult) []display.DisplayItem {
	failed := make(map[string]string)
	if batch != nil {
		for _, f := range batch.Failed {
			failed[f.Name] = f.Err.Error()
		}
	}

	out := make([]display.DisplayItem, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, display.DisplayItem{
			Name:       s.Item.Name,
			Group:      string(s.Item.Group),
			State:      string(s.State),
			Target:     s.Item.Target,
			LinkTarget: s.LinkTarget,
			Error:      failed[s.Item.Name],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group == string(types.GroupMinimal)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Update converts an update result.
func Update(res *update.Result) *display.DisplayUpdate {
	if res == nil {
		return nil
	}
	d := &display.DisplayUpdate{
		Mode:   string(res.Mode),
		Before: res.Before,
		After:  res.After,
		NoOp:   string(res.NoOp),
	}
	if res.Tag != nil {
		d.Tag = res.Tag.Name
	}
	if res.Generation != nil {
		d.Generation = res.Generation.ID
	}
	if res.Enabled != nil {
		d.Enabled = len(res.Enabled.Succeeded)
		d.Skipped = len(res.Enabled.Skipped)
	}
	return d
}

// Result wraps converted parts into a CommandResult.
func Result(command, message string) *display.CommandResult {
	return &display.CommandResult{
		Command:   command,
		Message:   message,
		Timestamp: time.Now(),
	}
}
