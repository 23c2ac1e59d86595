package commands

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/converter"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/arthur-debert/dotgen/pkg/update"
)

// UpdateOptions holds options for the update command
type UpdateOptions struct {
	// Mode is "stable" or "edge"; empty means edge.
	Mode string

	ForceTag    bool
	ForceRecord bool
}

// Update advances the install and records a generation. On a partial
// failure the returned result still describes what was done.
func Update(ctx context.Context, env *Env, opts UpdateOptions) (*display.CommandResult, error) {
	logger := logging.GetLogger("commands.update")

	mode, err := update.ParseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	if err := env.RequireInstalled(); err != nil {
		return nil, err
	}

	repo, err := env.repository()
	if err != nil {
		return nil, err
	}
	led, err := env.ledger()
	if err != nil {
		return nil, err
	}
	engine, err := env.snapshots()
	if err != nil {
		return nil, err
	}
	rec := env.reconciler()

	logger.Info().
		Str("mode", string(mode)).
		Str("copier", engine.CopierName()).
		Bool("force_tag", opts.ForceTag).
		Bool("force_record", opts.ForceRecord).
		Msg("Updating")

	res, err := update.New(update.Deps{
		Repo:      repo,
		Ledger:    led,
		Snapshots: engine,
		Links:     rec,
		Layout:    env.Paths,
	}).Run(ctx, update.Options{Mode: mode, ForceTag: opts.ForceTag, ForceRecord: opts.ForceRecord})
	if res == nil {
		return nil, err
	}

	out := converter.Result("update", updateMessage(res))
	out.Update = converter.Update(res)
	if res.Enabled != nil || res.Disabled != nil {
		out.Items = converter.Items(rec.StatusAll(), res.Enabled)
	}
	return out, err
}

func updateMessage(res *update.Result) string {
	switch {
	case res.NoOp != "":
		return "Nothing to update."
	case res.Generation != nil:
		return fmt.Sprintf("Updated to [rev]%s[/rev]. Previous state saved as generation [bold]%d[/bold].",
			types.ShortRevision(res.After), res.Generation.ID)
	default:
		return fmt.Sprintf("Updated to [rev]%s[/rev].", types.ShortRevision(res.After))
	}
}
