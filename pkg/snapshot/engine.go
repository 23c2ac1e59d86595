package snapshot

import (
	"context"
	"os/exec"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Copier selection values.
const (
	CopierAuto   = "auto"
	CopierRsync  = "rsync"
	CopierNative = "native"
)

// VCSExcludes are skipped at any depth in every snapshot.
var VCSExcludes = []string{".git", ".gitignore"}

// Options configures an Engine.
type Options struct {
	// Copier is auto, rsync or native.
	Copier string

	// RsyncPath is the rsync binary; empty means "rsync".
	RsyncPath string

	// StoreName is the generation store directory, excluded at the top of
	// every source tree.
	StoreName string

	// Fs backs the native copier and Remove. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Engine takes snapshots and discards them.
type Engine struct {
	copier   Copier
	fs       afero.Fs
	excludes Excludes
	logger   zerolog.Logger
}

// New selects a copier and returns an Engine.
func New(opts Options) (*Engine, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	rsyncPath := opts.RsyncPath
	if rsyncPath == "" {
		rsyncPath = "rsync"
	}

	var copier Copier
	switch opts.Copier {
	case CopierAuto, "":
		if _, err := exec.LookPath(rsyncPath); err == nil {
			copier = &RsyncCopier{Path: rsyncPath}
		} else {
			copier = &NativeCopier{Fs: fs}
		}
	case CopierRsync:
		if _, err := exec.LookPath(rsyncPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "rsync copier selected but %q was not found", rsyncPath)
		}
		copier = &RsyncCopier{Path: rsyncPath}
	case CopierNative:
		copier = &NativeCopier{Fs: fs}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown copier %q", opts.Copier)
	}

	return NewWithCopier(copier, fs, opts.StoreName), nil
}

// NewWithCopier builds an Engine around an explicit copier.
func NewWithCopier(copier Copier, fs afero.Fs, storeName string) *Engine {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	excludes := Excludes{Names: VCSExcludes}
	if storeName != "" {
		excludes.Root = []string{storeName}
	}
	return &Engine{
		copier:   copier,
		fs:       fs,
		excludes: excludes,
		logger:   logging.GetLogger("snapshot").With().Str("copier", copier.Name()).Logger(),
	}
}

// CopierName returns the selected copier.
func (e *Engine) CopierName() string {
	return e.copier.Name()
}

// Snapshot copies src into dst. Existing content in dst is overwritten.
func (e *Engine) Snapshot(ctx context.Context, src, dst string) error {
	done := logging.LogOperationStart(e.logger, "snapshot")
	defer done()

	if err := e.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrSnapshotFailed, "failed to create %s", dst).
			WithDetail(errors.DetailPath, dst)
	}

	if err := e.copier.Copy(ctx, src, dst, e.excludes); err != nil {
		if errors.IsErrorCode(err, errors.ErrSnapshotFailed) {
			return err
		}
		return errors.Wrapf(err, errors.ErrSnapshotFailed, "copy %s -> %s failed", src, dst)
	}

	e.logger.Info().Str("src", src).Str("dst", dst).Msg("Snapshot taken")
	return nil
}

// Remove deletes a staging or backup directory. A missing directory is not
// an error.
func (e *Engine) Remove(path string) error {
	if err := e.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path).
			WithDetail(errors.DetailPath, path)
	}
	e.logger.Debug().Str("path", path).Msg("Snapshot removed")
	return nil
}

// Exists reports whether path is present.
func (e *Engine) Exists(path string) bool {
	ok, err := afero.Exists(e.fs, path)
	return err == nil && ok
}
