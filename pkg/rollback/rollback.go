// Package rollback restores the install to a recorded generation or
// permanently discards one.
package rollback

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotgen/pkg/confirm"
	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/vcs"
	"github.com/google/uuid"
)

// Ledger is the part of the generation ledger a rollback needs.
type Ledger interface {
	ListActive() []types.Generation
	Get(id int) (types.Generation, error)
	Archive(id int) error
}

// Linker re-deploys the managed items.
type Linker interface {
	DisableAll() (*links.BatchResult, error)
	EnableAll() (*links.BatchResult, error)
}

// Remover discards backup directories.
type Remover interface {
	Remove(path string) error
}

// Layout resolves backup directories.
type Layout interface {
	BackupDir(id int) string
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Repo      vcs.Repository
	Ledger    Ledger
	Links     Linker
	Snapshots Remover
	Layout    Layout
	Confirmer confirm.Confirmer
}

// Result describes a rollback or delete.
type Result struct {
	RunID      string
	Generation types.Generation

	// Before is HEAD before a rollback.
	Before string

	// BackupRemoved is set by Delete when the backup directory was removed.
	BackupRemoved bool

	Disabled *links.BatchResult
	Enabled  *links.BatchResult
}

// Manager runs rollbacks and deletions.
type Manager struct {
	deps Deps
}

// New returns a Manager. A nil Confirmer declines everything.
func New(deps Deps) *Manager {
	if deps.Confirmer == nil {
		deps.Confirmer = confirm.Always(false)
	}
	return &Manager{deps: deps}
}

// Candidates returns the generations offered for selection, newest first.
func (m *Manager) Candidates() []types.Generation {
	return m.deps.Ledger.ListActive()
}

func (m *Manager) active(id int) (types.Generation, error) {
	g, err := m.deps.Ledger.Get(id)
	if err != nil {
		return types.Generation{}, err
	}
	if !g.IsActive() {
		return types.Generation{}, errors.Newf(errors.ErrNotFound, "generation %d is archived", id).
			WithDetail("id", id)
	}
	return g, nil
}

func (m *Manager) confirm(prompt string) error {
	ok, err := m.deps.Confirmer.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCancelled, "cancelled")
	}
	return nil
}

// RollbackTo resets the repository to the generation's source revision and
// re-deploys the links. Reset and clean failures leave the links disabled.
func (m *Manager) RollbackTo(ctx context.Context, id int) (*Result, error) {
	d := m.deps
	res := &Result{RunID: uuid.NewString()}
	logger := logging.GetRunLogger("rollback", res.RunID).With().Int("generation", id).Logger()

	g, err := m.active(id)
	if err != nil {
		return nil, err
	}
	res.Generation = g

	prompt := fmt.Sprintf("Roll back to generation %d (commit %s)? Local changes will be lost.", g.ID, g.ShortRevision())
	if err := m.confirm(prompt); err != nil {
		logger.Info().Msg("Rollback cancelled")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "interrupted")
	}

	done := logging.LogOperationStart(logger, "rollback")
	defer done()

	if res.Before, err = d.Repo.Head(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrResetFailed, "failed to read HEAD")
	}

	if res.Disabled, err = d.Links.DisableAll(); err != nil {
		// nothing has been reset yet; stop while the tree is intact
		return res, err
	}

	if err := d.Repo.ResetHard(ctx, g.SourceRevision); err != nil {
		return res, resetFailed(err, "reset to %s failed; links remain disabled", g.ShortRevision())
	}
	if err := d.Repo.Clean(ctx); err != nil {
		return res, resetFailed(err, "removing untracked files failed; links remain disabled")
	}
	logger.Info().Str("revision", g.SourceRevision).Msg("Repository reset")

	if res.Enabled, err = d.Links.EnableAll(); err != nil {
		return res, err
	}

	logger.Info().Msg("Rollback complete")
	return res, nil
}

// resetFailed lifts the collaborator's details. Its output is left on the
// wrapped error, which already prints it.
func resetFailed(err error, format string, args ...interface{}) error {
	rerr := errors.Wrapf(err, errors.ErrResetFailed, format, args...)
	for k, v := range errors.GetErrorDetails(err) {
		if k != errors.DetailOutput {
			rerr.WithDetail(k, v)
		}
	}
	return rerr
}

// Delete archives a generation and, unless keepBackup, removes its backup
// directory. It never touches the repository or the links.
func (m *Manager) Delete(ctx context.Context, id int, keepBackup bool) (*Result, error) {
	d := m.deps
	res := &Result{RunID: uuid.NewString()}
	logger := logging.GetRunLogger("rollback", res.RunID).With().Int("generation", id).Logger()

	g, err := m.active(id)
	if err != nil {
		return nil, err
	}
	res.Generation = g

	prompt := fmt.Sprintf("Delete generation %d (%s)?", g.ID, g.Description)
	if !keepBackup {
		prompt = fmt.Sprintf("Delete generation %d (%s) and its backup?", g.ID, g.Description)
	}
	if err := m.confirm(prompt); err != nil {
		logger.Info().Msg("Delete cancelled")
		return nil, err
	}

	if err := d.Ledger.Archive(id); err != nil {
		return nil, err
	}
	res.Generation.Status = types.StatusArchived
	logger.Info().Msg("Generation archived")

	if keepBackup {
		return res, nil
	}
	if err := d.Snapshots.Remove(d.Layout.BackupDir(id)); err != nil {
		return res, err
	}
	res.BackupRemoved = true
	logger.Info().Str("path", d.Layout.BackupDir(id)).Msg("Backup removed")
	return res, nil
}
