package commands

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/rollback"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/converter"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
)

// Interactive rollback actions, in menu order.
const (
	ActionRollback = "Roll back to a generation"
	ActionDelete   = "Delete a generation"
)

// RollbackListOptions holds options for rollback list
type RollbackListOptions struct {
	// All includes archived generations.
	All bool
}

// RollbackList returns the recorded generations, newest first.
func RollbackList(env *Env, opts RollbackListOptions) (*display.CommandResult, error) {
	if err := env.RequireInstalled(); err != nil {
		return nil, err
	}
	led, err := env.ledger()
	if err != nil {
		return nil, err
	}

	gens := led.ListActive()
	if opts.All {
		all := led.All()
		gens = make([]types.Generation, 0, len(all))
		for i := len(all) - 1; i >= 0; i-- {
			gens = append(gens, all[i])
		}
	}

	out := converter.Result("rollback list", "")
	out.Generations = converter.Generations(gens)
	return out, nil
}

func (e *Env) rollbackManager() (*rollback.Manager, error) {
	if err := e.RequireInstalled(); err != nil {
		return nil, err
	}
	repo, err := e.repository()
	if err != nil {
		return nil, err
	}
	led, err := e.ledger()
	if err != nil {
		return nil, err
	}
	engine, err := e.snapshots()
	if err != nil {
		return nil, err
	}
	return rollback.New(rollback.Deps{
		Repo:      repo,
		Ledger:    led,
		Links:     e.reconciler(),
		Snapshots: engine,
		Layout:    e.Paths,
		Confirmer: e.Prompter,
	}), nil
}

// RollbackTo restores generation id.
func RollbackTo(ctx context.Context, env *Env, id int) (*display.CommandResult, error) {
	mgr, err := env.rollbackManager()
	if err != nil {
		return nil, err
	}
	return rollbackTo(ctx, env, mgr, id)
}

func rollbackTo(ctx context.Context, env *Env, mgr *rollback.Manager, id int) (*display.CommandResult, error) {
	res, err := mgr.RollbackTo(ctx, id)
	if res == nil {
		return nil, err
	}

	out := converter.Result("rollback to",
		fmt.Sprintf("Rolled back to generation [bold]%d[/bold] ([rev]%s[/rev]).", res.Generation.ID, res.Generation.ShortRevision()))
	if err != nil {
		out.Message = fmt.Sprintf("Rollback to generation %d failed.", res.Generation.ID)
	}
	out.Items = converter.Items(env.reconciler().StatusAll(), res.Enabled)
	return out, err
}

// RollbackDeleteOptions holds options for rollback delete
type RollbackDeleteOptions struct {
	ID         int
	KeepBackup bool
}

// RollbackDelete archives a generation and removes its backup.
func RollbackDelete(ctx context.Context, env *Env, opts RollbackDeleteOptions) (*display.CommandResult, error) {
	mgr, err := env.rollbackManager()
	if err != nil {
		return nil, err
	}
	return rollbackDelete(ctx, mgr, opts)
}

func rollbackDelete(ctx context.Context, mgr *rollback.Manager, opts RollbackDeleteOptions) (*display.CommandResult, error) {
	res, err := mgr.Delete(ctx, opts.ID, opts.KeepBackup)
	if res == nil {
		return nil, err
	}

	msg := fmt.Sprintf("Deleted generation [bold]%d[/bold].", res.Generation.ID)
	if opts.KeepBackup {
		msg = fmt.Sprintf("Deleted generation [bold]%d[/bold]; its backup was kept.", res.Generation.ID)
	}
	out := converter.Result("rollback delete", msg)
	out.Generations = converter.Generations([]types.Generation{res.Generation})
	return out, err
}

// RollbackInteractive asks for an action and a generation, then runs it.
func RollbackInteractive(ctx context.Context, env *Env) (*display.CommandResult, error) {
	logger := logging.GetLogger("commands.rollback")

	mgr, err := env.rollbackManager()
	if err != nil {
		return nil, err
	}

	candidates := mgr.Candidates()
	if len(candidates) == 0 {
		return converter.Result("rollback", "No generations recorded yet."), nil
	}

	action, err := env.Prompter.Select("What do you want to do?", []string{ActionRollback, ActionDelete})
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(candidates))
	for i, g := range candidates {
		labels[i] = g.Label()
	}
	choice, err := env.Prompter.Select("Select a generation", labels)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(candidates) {
		return nil, errors.Newf(errors.ErrInvalidInput, "selection %d out of range", choice)
	}
	id := candidates[choice].ID
	logger.Debug().Int("action", action).Int("generation", id).Msg("Selected")

	if action == 1 {
		return rollbackDelete(ctx, mgr, RollbackDeleteOptions{ID: id})
	}
	return rollbackTo(ctx, env, mgr, id)
}
