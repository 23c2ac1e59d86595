// pkg/config/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir), environment (t.Setenv)
// PURPOSE: Test the defaults -> user file -> env layering and validation

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotgen/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noUserFile(t *testing.T) config.LoadOptions {
	return config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")}
}

func writeUserFile(t *testing.T, content string) config.LoadOptions {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return config.LoadOptions{ConfigFile: path}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(noUserFile(t))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Install.Dir)
	assert.Equal(t, "config", cfg.Install.ConfigSubdir)
	assert.Equal(t, ".full_install", cfg.Install.FullInstallMarker)
	assert.Equal(t, "generations", cfg.Generations.Subdir)
	assert.Equal(t, "generations.json", cfg.Generations.LedgerFile)
	assert.Equal(t, config.CopierAuto, cfg.Snapshot.Copier)
	assert.Equal(t, config.BackendGoGit, cfg.VCS.Backend)
	assert.Equal(t, "origin", cfg.VCS.Remote)
	assert.Equal(t, []string{"hypr", "waybar", "rofi", "swaylock", "swappy", "swaync"}, cfg.Items.Minimal)
	assert.Equal(t, []string{"alacritty", "fastfetch", "fish", "nvim", "ranger", "udiskie"}, cfg.Items.Extra)
}

func TestLoad_UserFileOverridesDefaults(t *testing.T) {
	opts := writeUserFile(t, `
[install]
dir = "/opt/dots"

[snapshot]
copier = "native"

[items]
extra = ["kitty"]
`)

	cfg, err := config.Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/opt/dots", cfg.Install.Dir)
	assert.Equal(t, config.CopierNative, cfg.Snapshot.Copier)
	assert.Equal(t, []string{"kitty"}, cfg.Items.Extra)
	// untouched keys keep their defaults
	assert.Equal(t, "config", cfg.Install.ConfigSubdir)
	assert.Len(t, cfg.Items.Minimal, 6)
}

func TestLoad_EnvOverridesUserFile(t *testing.T) {
	opts := writeUserFile(t, `
[vcs]
backend = "gogit"
`)
	t.Setenv("DOTGEN_VCS_BACKEND", "cli")
	t.Setenv("DOTGEN_GENERATIONS_LEDGER_FILE", "ledger.json")
	t.Setenv("DOTGEN_ITEMS_MINIMAL", "hypr,waybar")

	cfg, err := config.Load(opts)
	require.NoError(t, err)

	assert.Equal(t, config.BackendCLI, cfg.VCS.Backend)
	assert.Equal(t, "ledger.json", cfg.Generations.LedgerFile)
	assert.Equal(t, []string{"hypr", "waybar"}, cfg.Items.Minimal)
}

func TestLoad_InvalidUserFile(t *testing.T) {
	opts := writeUserFile(t, "[install\ndir = ")

	_, err := config.Load(opts)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "unknown_copier",
			mutate: func(c *config.Config) { c.Snapshot.Copier = "scp" },
			errMsg: "snapshot.copier",
		},
		{
			name:   "unknown_backend",
			mutate: func(c *config.Config) { c.VCS.Backend = "hg" },
			errMsg: "vcs.backend",
		},
		{
			name:   "store_subdir_with_separator",
			mutate: func(c *config.Config) { c.Generations.Subdir = "a/b" },
			errMsg: "generations.subdir",
		},
		{
			name:   "item_in_both_groups",
			mutate: func(c *config.Config) { c.Items.Extra = append(c.Items.Extra, "hypr") },
			errMsg: "both",
		},
		{
			name:   "empty_item_name",
			mutate: func(c *config.Config) { c.Items.Minimal = []string{""} },
			errMsg: "items.minimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(noUserFile(t))
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateConfigContent_RoundTrips(t *testing.T) {
	cfg, err := config.Load(noUserFile(t))
	require.NoError(t, err)
	cfg.Install.Dir = "/srv/dots"

	content, err := config.GenerateConfigContent(cfg)
	require.NoError(t, err)
	assert.Contains(t, content, "[install]")
	assert.Contains(t, content, "/srv/dots")

	reloaded, err := config.Load(writeUserFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestDefaultConfigFile_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, "/tmp/xdg-config/dotgen/config.toml", config.DefaultConfigFile())
}

func TestDefaultConfigContent_IsTheEmbeddedDefaults(t *testing.T) {
	content := config.DefaultConfigContent()
	assert.Contains(t, content, "[generations]")

	cfg, err := config.Load(writeUserFile(t, content))
	require.NoError(t, err)

	defaults, err := config.Load(noUserFile(t))
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}
