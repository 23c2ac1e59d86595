// Package update advances the install to a new revision and records the
// previous state as a generation.
//
// The sequence is: refuse on local modifications, snapshot the install to
// staging, move the repository (latest tag or pull), and only when HEAD
// actually moved copy the staging snapshot into the generation store and
// append the ledger record. Links are then re-created against the new tree.
// Once the repository has moved nothing is undone: later failures are
// reported as PARTIAL_UPDATE naming the step reached.
package update

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/vcs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mode selects how the repository is advanced.
type Mode string

const (
	// ModeStable checks out the most recent tag.
	ModeStable Mode = "stable"

	// ModeEdge pulls the tracked branch.
	ModeEdge Mode = "edge"
)

// ParseMode accepts "stable" and "edge"; empty means edge.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEdge, "":
		return ModeEdge, nil
	case ModeStable:
		return ModeStable, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown update mode %q (want stable or edge)", s)
	}
}

// NoOpReason names the check that turned an update into a no-op.
type NoOpReason string

const (
	// NoOpLatestTag means HEAD already is the latest tag (stable mode).
	NoOpLatestTag NoOpReason = "latest-tag"

	// NoOpUnchanged means HEAD did not move.
	NoOpUnchanged NoOpReason = "unchanged"
)

// Options tunes a single run.
type Options struct {
	Mode Mode

	// ForceTag checks out the latest tag even when HEAD already is it.
	ForceTag bool

	// ForceRecord records a generation even when HEAD did not move.
	ForceRecord bool
}

// Result describes what a run did.
type Result struct {
	RunID string
	Mode  Mode

	Before string
	After  string

	// Tag is the tag considered in stable mode.
	Tag *vcs.Tag

	// NoOp is set when nothing was recorded.
	NoOp NoOpReason

	Generation *types.Generation

	Disabled *links.BatchResult
	Enabled  *links.BatchResult
}

// Ledger is the part of the generation ledger an update needs.
type Ledger interface {
	NextID() int
	Append(revision, description string) (types.Generation, error)
}

// Snapshotter copies and discards trees.
type Snapshotter interface {
	Snapshot(ctx context.Context, src, dst string) error
	Remove(path string) error
}

// Linker re-deploys the managed items.
type Linker interface {
	DisableAll() (*links.BatchResult, error)
	EnableAll() (*links.BatchResult, error)
}

// Layout resolves the directories an update touches.
type Layout interface {
	InstallDir() string
	StagingDir() string
	BackupDir(id int) string
}

// Deps are the collaborators of an Updater.
type Deps struct {
	Repo      vcs.Repository
	Ledger    Ledger
	Snapshots Snapshotter
	Links     Linker
	Layout    Layout
}

// Updater runs updates.
type Updater struct {
	deps Deps
}

// New returns an Updater.
func New(deps Deps) *Updater {
	return &Updater{deps: deps}
}

// Run performs one update.
func (u *Updater) Run(ctx context.Context, opts Options) (*Result, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Mode: mode}
	logger := logging.GetRunLogger("update", res.RunID)
	done := logging.LogOperationStart(logger, "update")
	defer done()

	r := &run{deps: u.deps, opts: opts, res: res, logger: logger}
	return r.execute(ctx)
}

// run holds the state of one Run.
type run struct {
	deps   Deps
	opts   Options
	res    *Result
	logger zerolog.Logger
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	d := r.deps
	res := r.res

	// 0. precondition
	dirty, err := d.Repo.HasLocalChanges(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpdateFailed, "failed to inspect the repository")
	}
	if dirty {
		return nil, errors.New(errors.ErrUpdateFailed,
			"the repository has local modifications; commit or stash them first").
			WithDetail(errors.DetailPath, d.Layout.InstallDir())
	}

	// 1. snapshot
	staging := d.Layout.StagingDir()
	if err := d.Snapshots.Remove(staging); err != nil {
		return nil, err
	}
	if err := d.Snapshots.Snapshot(ctx, d.Layout.InstallDir(), staging); err != nil {
		r.discard(staging)
		return nil, err
	}

	// 2. before
	before, err := d.Repo.Head(ctx)
	if err != nil {
		r.discard(staging)
		return nil, errors.Wrap(err, errors.ErrUpdateFailed, "failed to read HEAD")
	}
	res.Before = before
	r.logger.Info().Str("mode", string(res.Mode)).Str("before", before).Msg("Updating")

	// 3. advance
	noop, err := r.advance(ctx)
	if err != nil {
		r.discard(staging)
		return nil, err
	}
	if noop {
		res.After = before
		res.NoOp = NoOpLatestTag
		r.discard(staging)
		r.logger.Info().Str("tag", res.Tag.Name).Msg("Already at the latest tag")
		return res, nil
	}

	// 4. after
	after, err := d.Repo.Head(ctx)
	if err != nil {
		return nil, r.partial(err, "read-head")
	}
	res.After = after
	if before == after && !r.opts.ForceRecord {
		res.NoOp = NoOpUnchanged
		r.discard(staging)
		r.logger.Info().Msg("Repository unchanged, no generation recorded")
		return res, nil
	}

	// 5. backup, then record
	id := d.Ledger.NextID()
	backup := d.Layout.BackupDir(id)
	if err := d.Snapshots.Remove(backup); err != nil {
		return nil, r.partial(err, "backup")
	}
	if err := d.Snapshots.Snapshot(ctx, staging, backup); err != nil {
		return nil, r.partial(err, "backup")
	}
	gen, err := d.Ledger.Append(before, "Update to "+types.ShortRevision(after))
	if err != nil {
		return nil, r.partial(err, "record")
	}
	if gen.ID != id {
		return nil, r.partial(errors.Newf(errors.ErrInternal,
			"ledger allocated generation %d but the backup was stored as %d", gen.ID, id), "record")
	}
	res.Generation = &gen

	// 6. staging no longer needed
	r.discard(staging)

	// 7. re-deploy
	if res.Disabled, err = d.Links.DisableAll(); err != nil {
		return res, r.partial(err, "disable-links")
	}
	if res.Enabled, err = d.Links.EnableAll(); err != nil {
		return res, r.partial(err, "enable-links")
	}

	r.logger.Info().Int("generation", gen.ID).Str("after", after).Msg("Update complete")
	return res, nil
}

// advance moves the repository. It reports true when stable mode found
// HEAD already at the latest tag.
func (r *run) advance(ctx context.Context) (bool, error) {
	repo := r.deps.Repo

	switch r.res.Mode {
	case ModeStable:
		if err := repo.FetchTags(ctx); err != nil {
			return false, errors.Wrap(err, errors.ErrUpdateFailed, "failed to fetch tags")
		}
		tag, err := repo.LatestTag(ctx)
		if err != nil {
			return false, errors.Wrap(err, errors.ErrUpdateFailed, "failed to find the latest tag")
		}
		r.res.Tag = &tag

		if tag.Revision == r.res.Before && !r.opts.ForceTag {
			return true, nil
		}
		r.logger.Info().Str("tag", tag.Name).Msg("Checking out latest tag")
		if err := repo.Checkout(ctx, tag.Revision); err != nil {
			return false, errors.Wrapf(err, errors.ErrUpdateFailed, "failed to check out %s", tag.Name)
		}

	default:
		if err := repo.Pull(ctx); err != nil {
			return false, errors.Wrap(err, errors.ErrUpdateFailed, "pull failed")
		}
	}
	return false, nil
}

func (r *run) discard(staging string) {
	if err := r.deps.Snapshots.Remove(staging); err != nil {
		r.logger.Warn().Err(err).Str("path", staging).Msg("Failed to discard staging snapshot")
	}
}

func (r *run) partial(err error, step string) error {
	msg := fmt.Sprintf("update stopped at %s after the repository moved to %s", step, types.ShortRevision(r.res.After))
	if r.res.After == "" {
		msg = fmt.Sprintf("update stopped at %s after the repository moved", step)
	}
	perr := errors.Wrap(err, errors.ErrPartialUpdate, msg).
		WithDetail("step", step).
		WithDetail("before", r.res.Before)
	if r.res.Generation != nil {
		perr.WithDetail("generation", r.res.Generation.ID)
	}
	r.logger.Error().Err(err).Str("step", step).Msg("Update partially applied")
	return perr
}
