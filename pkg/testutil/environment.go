// pkg/testutil/environment.go
// DEPENDENCIES: go-git (no git binary)
// PURPOSE: Orchestrate an isolated install for integration tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotgen/pkg/config"
	"github.com/arthur-debert/dotgen/pkg/paths"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is an upstream repository, its clone acting as the
// install, and the deploy and staging dirs next to it.
type TestEnvironment struct {
	Origin  *GitRepo
	Install *GitRepo

	DeployDir  string
	StagingDir string

	Config *config.Config
	Paths  paths.Paths

	t *testing.T
}

// NewTestEnvironment builds an upstream with one config file per item in
// the minimal set (or the given items), clones it as the install and
// resolves config and paths against temp dirs.
func NewTestEnvironment(t *testing.T, items ...string) *TestEnvironment {
	t.Helper()

	cfg, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "none.toml")})
	require.NoError(t, err)

	if len(items) > 0 {
		cfg.Items.Minimal = items
		cfg.Items.Extra = nil
	}

	origin := NewGitRepo(t)
	origin.WriteFile("README.md", "# dotfiles\n")
	for _, name := range cfg.Items.Minimal {
		origin.WriteFile(filepath.Join(cfg.Install.ConfigSubdir, name, "config"), name+" v1\n")
	}
	origin.Commit("Initial commit")

	root := t.TempDir()
	install := origin.CloneTo(filepath.Join(root, "install"))

	cfg.Install.Dir = install.Path
	cfg.Deploy.Dir = filepath.Join(root, "deploy")
	cfg.Generations.StagingDir = filepath.Join(root, "staging")
	cfg.Snapshot.Copier = config.CopierNative
	require.NoError(t, os.MkdirAll(cfg.Deploy.Dir, 0755))

	p, err := paths.New(cfg, "")
	require.NoError(t, err)

	return &TestEnvironment{
		Origin:     origin,
		Install:    install,
		DeployDir:  cfg.Deploy.Dir,
		StagingDir: cfg.Generations.StagingDir,
		Config:     cfg,
		Paths:      p,
		t:          t,
	}
}

// WriteInstallFile writes a file inside the install without committing it.
func (e *TestEnvironment) WriteInstallFile(rel, content string) {
	e.t.Helper()
	e.Install.WriteFile(rel, content)
}

// ReadInstallFile returns a file's content from the install.
func (e *TestEnvironment) ReadInstallFile(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.Install.Path, rel))
	require.NoError(e.t, err)
	return string(data)
}

// PublishUpstream commits a change to an item's config upstream and
// returns the new upstream commit.
func (e *TestEnvironment) PublishUpstream(item, content, message string) string {
	e.t.Helper()
	e.Origin.WriteFile(filepath.Join(e.Config.Install.ConfigSubdir, item, "config"), content)
	return e.Origin.Commit(message)
}
