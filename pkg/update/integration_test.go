// pkg/update/integration_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real git repositories (go-git), real filesystem
// PURPOSE: Test an edge and a stable update end to end

package update_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotgen/pkg/filesystem"
	"github.com/arthur-debert/dotgen/pkg/ledger"
	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/snapshot"
	"github.com/arthur-debert/dotgen/pkg/testutil"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/update"
	"github.com/arthur-debert/dotgen/pkg/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wire(t *testing.T, env *testutil.TestEnvironment) (*update.Updater, *ledger.Ledger, *links.Reconciler) {
	t.Helper()

	repo, err := vcs.Open(env.Install.Path, vcs.Options{
		Backend: vcs.BackendGoGit,
		Keep:    []string{env.Paths.StoreName()},
	})
	require.NoError(t, err)

	led, err := ledger.Load(env.Paths.LedgerPath(), ledger.Options{})
	require.NoError(t, err)

	engine, err := snapshot.New(snapshot.Options{Copier: snapshot.CopierNative, StoreName: env.Paths.StoreName()})
	require.NoError(t, err)

	rec := links.New(links.Options{
		FS:      filesystem.NewOS(),
		Paths:   env.Paths,
		Minimal: env.Config.Items.Minimal,
		Extra:   env.Config.Items.Extra,
	})

	return update.New(update.Deps{
		Repo:      repo,
		Ledger:    led,
		Snapshots: engine,
		Links:     rec,
		Layout:    env.Paths,
	}), led, rec
}

func TestIntegration_EdgeUpdate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, "hypr", "waybar")
	updater, led, rec := wire(t, env)

	before := env.Install.Head()
	after := env.PublishUpstream("hypr", "hypr v2\n", "bump hypr")

	res, err := updater.Run(context.Background(), update.Options{Mode: update.ModeEdge})
	require.NoError(t, err)

	assert.Equal(t, before, res.Before)
	assert.Equal(t, after, res.After)
	assert.Equal(t, "hypr v2\n", env.ReadInstallFile("config/hypr/config"))

	gens := led.ListActive()
	require.Len(t, gens, 1)
	assert.Equal(t, before, gens[0].SourceRevision)

	backup, err := os.ReadFile(filepath.Join(env.Paths.BackupDir(1), "config", "hypr", "config"))
	require.NoError(t, err)
	assert.Equal(t, "hypr v1\n", string(backup))
	assert.NoDirExists(t, filepath.Join(env.Paths.BackupDir(1), ".git"))

	for _, it := range rec.Items() {
		assert.Equal(t, types.LinkEnabled, rec.State(it), it.Name)
	}

	// nothing new upstream: no second generation, store untouched
	res, err = updater.Run(context.Background(), update.Options{Mode: update.ModeEdge})
	require.NoError(t, err)
	assert.Equal(t, update.NoOpUnchanged, res.NoOp)
	assert.Len(t, led.All(), 1)
	assert.NoDirExists(t, env.Paths.BackupDir(2))
}

func TestIntegration_StableUpdate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, "hypr")
	updater, led, _ := wire(t, env)

	tagged := env.PublishUpstream("hypr", "hypr v2\n", "release 2")
	env.Origin.AnnotatedTag("v2.0", "release 2")
	env.PublishUpstream("hypr", "hypr v3-dev\n", "work in progress")

	res, err := updater.Run(context.Background(), update.Options{Mode: update.ModeStable})
	require.NoError(t, err)
	require.NotNil(t, res.Tag)
	assert.Equal(t, "v2.0", res.Tag.Name)
	assert.Equal(t, tagged, res.After)
	assert.Equal(t, "hypr v2\n", env.ReadInstallFile("config/hypr/config"))
	assert.Len(t, led.All(), 1)

	res, err = updater.Run(context.Background(), update.Options{Mode: update.ModeStable})
	require.NoError(t, err)
	assert.Equal(t, update.NoOpLatestTag, res.NoOp)
	assert.Len(t, led.All(), 1)
}
