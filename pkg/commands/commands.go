// Package commands is the orchestration layer between the CLI and the core
// packages.
//
// Setup resolves configuration and paths once; every command function takes
// the resulting Env, wires the collaborators it needs and returns a display
// result the CLI renders. Nothing here prints.
//
//   - update.go   - Update
//   - rollback.go - RollbackList, RollbackTo, RollbackDelete, RollbackInteractive
//   - items.go    - ConfigList, ConfigEnable, ConfigDisable
//   - genconfig.go - GenConfig
package commands

import (
	"github.com/arthur-debert/dotgen/pkg/config"
	"github.com/arthur-debert/dotgen/pkg/confirm"
	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/filesystem"
	"github.com/arthur-debert/dotgen/pkg/ledger"
	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/paths"
	"github.com/arthur-debert/dotgen/pkg/snapshot"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/vcs"
)

// Options are the global CLI settings.
type Options struct {
	// ConfigFile overrides the user config location.
	ConfigFile string

	// InstallDir overrides install.dir.
	InstallDir string

	// AssumeYes answers every confirmation with yes.
	AssumeYes bool

	// Prompter replaces the terminal prompter, mainly for tests.
	Prompter confirm.Prompter
}

// Env is the resolved environment every command runs in.
type Env struct {
	Config   *config.Config
	Paths    paths.Paths
	Prompter confirm.Prompter
	FS       types.FS
}

// Setup loads configuration and resolves paths.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.ConfigFile})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load configuration")
	}

	p, err := paths.New(cfg, opts.InstallDir)
	if err != nil {
		return nil, err
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = confirm.New(opts.AssumeYes)
	}

	logger := logging.GetLogger("commands")
	logger.Debug().
		Str("install_dir", p.InstallDir()).
		Str("deploy_dir", p.DeployDir()).
		Msg("Environment resolved")

	return &Env{
		Config:   cfg,
		Paths:    p,
		Prompter: prompter,
		FS:       filesystem.NewOS(),
	}, nil
}

// RequireInstalled fails with NOT_INSTALLED unless the install dir is a git
// work tree.
func (e *Env) RequireInstalled() error {
	if e.Paths.IsInstalled() {
		return nil
	}
	return errors.Newf(errors.ErrNotInstalled, "no installation found at %s", e.Paths.InstallDir()).
		WithDetail(errors.DetailPath, e.Paths.InstallDir())
}

// keep lists the untracked install entries a clean must not remove.
func (e *Env) keep() []string {
	return []string{e.Paths.StoreName(), e.Config.Install.FullInstallMarker}
}

func (e *Env) repository() (vcs.Repository, error) {
	return vcs.Open(e.Paths.InstallDir(), vcs.Options{
		Backend: e.Config.VCS.Backend,
		Remote:  e.Config.VCS.Remote,
		GitPath: e.Config.VCS.GitPath,
		Keep:    e.keep(),
	})
}

func (e *Env) ledger() (*ledger.Ledger, error) {
	return ledger.Load(e.Paths.LedgerPath(), ledger.Options{})
}

func (e *Env) snapshots() (*snapshot.Engine, error) {
	return snapshot.New(snapshot.Options{
		Copier:    e.Config.Snapshot.Copier,
		RsyncPath: e.Config.Snapshot.RsyncPath,
		StoreName: e.Paths.StoreName(),
	})
}

func (e *Env) reconciler() *links.Reconciler {
	return links.New(links.Options{
		FS:        e.FS,
		Paths:     e.Paths,
		Minimal:   e.Config.Items.Minimal,
		Extra:     e.Config.Items.Extra,
		Confirmer: e.Prompter,
	})
}
