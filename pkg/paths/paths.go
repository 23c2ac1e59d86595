package paths

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotgen/pkg/config"
	"github.com/arthur-debert/dotgen/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	EnvXDGCacheHome  = "XDG_CACHE_HOME"
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
)

const (
	// InstallDirName is the directory name of the default install under the
	// XDG cache dir.
	InstallDirName = "dotgen"

	// StagingDirName is the default staging directory name under the XDG
	// cache dir.
	StagingDirName = "dotgen-staging"
)

// Paths provides centralized path management for dotgen
type Paths interface {
	InstallDir() string
	IsInstalled() bool
	ConfigSourceDir() string
	ItemSource(name string) string
	ItemTarget(name string) string
	DeployDir() string
	FullInstallMarker() string
	IsFullInstall() bool
	StoreDir() string
	StoreName() string
	LedgerPath() string
	BackupDir(id int) string
	StagingDir() string
}

type paths struct {
	installDir string
	deployDir  string
	stagingDir string
	cfg        *config.Config
}

// New resolves every path from cfg. installOverride, when non-empty, takes
// precedence over install.dir (the --install-dir flag).
func New(cfg *config.Config, installOverride string) (Paths, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrInternal, "paths: nil configuration")
	}

	p := &paths{cfg: cfg}

	install := cfg.Install.Dir
	if installOverride != "" {
		install = installOverride
	}
	if install == "" {
		install = filepath.Join(cacheHome(), InstallDirName)
	}

	deploy := cfg.Deploy.Dir
	if deploy == "" {
		deploy = configHome()
	}

	staging := cfg.Generations.StagingDir
	if staging == "" {
		staging = filepath.Join(cacheHome(), StagingDirName)
	}

	var err error
	if p.installDir, err = absolute(install, "install dir"); err != nil {
		return nil, err
	}
	if p.deployDir, err = absolute(deploy, "deploy dir"); err != nil {
		return nil, err
	}
	if p.stagingDir, err = absolute(staging, "staging dir"); err != nil {
		return nil, err
	}

	// staging is wiped on every update, so it may neither sit in nor contain the install
	if isWithin(p.installDir, p.stagingDir) || isWithin(p.stagingDir, p.installDir) {
		return nil, errors.Newf(errors.ErrInvalidInput, "staging dir %s must not overlap the install dir %s", p.stagingDir, p.installDir).
			WithDetail(errors.DetailPath, p.stagingDir)
	}

	return p, nil
}

func absolute(path, what string) (string, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", what)
	}
	return abs, nil
}

// isWithin reports whether path lies under dir.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !filepath.IsAbs(rel) && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// cacheHome and configHome read the environment first, as xdg resolves its
// variables once at program start.
func cacheHome() string {
	if dir := os.Getenv(EnvXDGCacheHome); dir != "" {
		return dir
	}
	return xdg.CacheHome
}

func configHome() string {
	if dir := os.Getenv(EnvXDGConfigHome); dir != "" {
		return dir
	}
	return xdg.ConfigHome
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// InstallDir returns the root of the cloned repository.
func (p *paths) InstallDir() string {
	return p.installDir
}

// IsInstalled reports whether the install dir is a git work tree.
func (p *paths) IsInstalled() bool {
	_, err := os.Stat(filepath.Join(p.installDir, ".git"))
	return err == nil
}

func (p *paths) ConfigSourceDir() string {
	return filepath.Join(p.installDir, p.cfg.Install.ConfigSubdir)
}

// ItemSource returns <install>/<config_subdir>/<name>.
func (p *paths) ItemSource(name string) string {
	return filepath.Join(p.ConfigSourceDir(), name)
}

// ItemTarget returns <deploy>/<name>.
func (p *paths) ItemTarget(name string) string {
	return filepath.Join(p.deployDir, name)
}

func (p *paths) DeployDir() string {
	return p.deployDir
}

func (p *paths) FullInstallMarker() string {
	return filepath.Join(p.installDir, p.cfg.Install.FullInstallMarker)
}

// IsFullInstall reports whether the full-install marker exists.
func (p *paths) IsFullInstall() bool {
	_, err := os.Stat(p.FullInstallMarker())
	return err == nil
}

// StoreDir returns the generation store inside the install dir.
func (p *paths) StoreDir() string {
	return filepath.Join(p.installDir, p.cfg.Generations.Subdir)
}

// StoreName returns the store directory name relative to the install dir.
func (p *paths) StoreName() string {
	return p.cfg.Generations.Subdir
}

func (p *paths) LedgerPath() string {
	return filepath.Join(p.StoreDir(), p.cfg.Generations.LedgerFile)
}

// BackupDir returns the snapshot directory of generation id.
func (p *paths) BackupDir(id int) string {
	return filepath.Join(p.StoreDir(), strconv.Itoa(id))
}

func (p *paths) StagingDir() string {
	return p.stagingDir
}
