package config

import (
	"fmt"
	"strings"
)

// Config is the complete dotgen configuration.
type Config struct {
	Install     Install     `koanf:"install" toml:"install"`
	Deploy      Deploy      `koanf:"deploy" toml:"deploy"`
	Generations Generations `koanf:"generations" toml:"generations"`
	Snapshot    Snapshot    `koanf:"snapshot" toml:"snapshot"`
	VCS         VCS         `koanf:"vcs" toml:"vcs"`
	Items       Items       `koanf:"items" toml:"items"`
}

// Install describes the persistent install: the cloned repository that is
// both the source tree and the deployment.
type Install struct {
	Dir string `koanf:"dir" toml:"dir"`

	// ConfigSubdir holds one directory per managed item.
	ConfigSubdir string `koanf:"config_subdir" toml:"config_subdir"`

	// FullInstallMarker is a file in the install dir whose presence adds the
	// extra items to the managed set.
	FullInstallMarker string `koanf:"full_install_marker" toml:"full_install_marker"`
}

// Deploy holds where managed items are linked to.
type Deploy struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Generations holds the layout of the generation store.
type Generations struct {
	// Subdir of the install dir holding the ledger and one backup per id.
	Subdir     string `koanf:"subdir" toml:"subdir"`
	LedgerFile string `koanf:"ledger_file" toml:"ledger_file"`
	StagingDir string `koanf:"staging_dir" toml:"staging_dir"`
}

// Snapshot selects the copy collaborator.
type Snapshot struct {
	Copier    string `koanf:"copier" toml:"copier"`
	RsyncPath string `koanf:"rsync_path" toml:"rsync_path"`
}

// VCS selects the version control collaborator.
type VCS struct {
	Backend string `koanf:"backend" toml:"backend"`
	Remote  string `koanf:"remote" toml:"remote"`
	GitPath string `koanf:"git_path" toml:"git_path"`
}

// Items lists the managed configuration directories.
type Items struct {
	Minimal []string `koanf:"minimal" toml:"minimal"`
	Extra   []string `koanf:"extra" toml:"extra"`
}

// Copier names
const (
	CopierAuto   = "auto"
	CopierRsync  = "rsync"
	CopierNative = "native"
)

// VCS backend names
const (
	BackendGoGit = "gogit"
	BackendCLI   = "cli"
)

// Validate checks values that would otherwise fail late, half way through
// an update.
func (c *Config) Validate() error {
	switch c.Snapshot.Copier {
	case CopierAuto, CopierRsync, CopierNative:
	default:
		return fmt.Errorf("snapshot.copier must be one of auto, rsync, native; got %q", c.Snapshot.Copier)
	}

	switch c.VCS.Backend {
	case BackendGoGit, BackendCLI:
	default:
		return fmt.Errorf("vcs.backend must be one of gogit, cli; got %q", c.VCS.Backend)
	}

	if err := validateName("install.config_subdir", c.Install.ConfigSubdir); err != nil {
		return err
	}
	if err := validateName("install.full_install_marker", c.Install.FullInstallMarker); err != nil {
		return err
	}
	if err := validateName("generations.subdir", c.Generations.Subdir); err != nil {
		return err
	}
	if err := validateName("generations.ledger_file", c.Generations.LedgerFile); err != nil {
		return err
	}

	seen := make(map[string]string)
	for group, names := range map[string][]string{"minimal": c.Items.Minimal, "extra": c.Items.Extra} {
		for _, name := range names {
			if err := validateName("items."+group, name); err != nil {
				return err
			}
			if other, dup := seen[name]; dup {
				return fmt.Errorf("item %q is listed in both items.%s and items.%s", name, other, group)
			}
			seen[name] = group
		}
	}

	return nil
}

func validateName(key, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%s must be a plain name, got %q", key, name)
	}
	return nil
}
