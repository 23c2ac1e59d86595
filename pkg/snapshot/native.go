package snapshot

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/spf13/afero"
)

// NativeCopier copies through an afero filesystem. The filesystem must
// support Lstat, Readlink and Symlink (afero.OsFs does).
type NativeCopier struct {
	Fs afero.Fs
}

// NewNativeCopier returns a copier over the OS filesystem.
func NewNativeCopier() *NativeCopier {
	return &NativeCopier{Fs: afero.NewOsFs()}
}

func (n *NativeCopier) Name() string { return "native" }

func (n *NativeCopier) Copy(ctx context.Context, src, dst string, excludes Excludes) error {
	logger := logging.GetLogger("snapshot")

	lstater, ok := n.Fs.(afero.Lstater)
	if !ok {
		return errors.New(errors.ErrSnapshotFailed, "filesystem does not support lstat")
	}
	reader, ok := n.Fs.(afero.LinkReader)
	if !ok {
		return errors.New(errors.ErrSnapshotFailed, "filesystem does not support readlink")
	}
	linker, ok := n.Fs.(afero.Linker)
	if !ok {
		return errors.New(errors.ErrSnapshotFailed, "filesystem does not support symlinks")
	}

	// Directory modes are applied once their content is written, so a
	// read-only directory can still be filled.
	type dirMode struct {
		path string
		mode os.FileMode
	}
	var dirs []dirMode

	err := afero.Walk(n.Fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if rel != "." && excludes.skip(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// afero.Walk reports entries through Lstat when available, so a
		// symlink to a directory is seen as a symlink and never descended.
		mode := info.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			dest, err := reader.ReadlinkIfPossible(path)
			if err != nil {
				return err
			}
			if err := n.clear(lstater, target, false); err != nil {
				return err
			}
			return linker.SymlinkIfPossible(dest, target)

		case mode.IsDir():
			if err := n.clear(lstater, target, true); err != nil {
				return err
			}
			dirs = append(dirs, dirMode{target, mode.Perm()})
			if err := n.Fs.MkdirAll(target, 0700); err != nil {
				return err
			}
			// an existing directory may have been left read-only
			return n.Fs.Chmod(target, mode.Perm()|0700)

		case mode.IsRegular():
			if err := n.clear(lstater, target, false); err != nil {
				return err
			}
			return n.copyFile(path, target, info)

		default:
			logger.Warn().Str("path", path).Str("mode", mode.String()).Msg("Skipping special file")
			return nil
		}
	})
	for i := len(dirs) - 1; i >= 0 && err == nil; i-- {
		err = n.Fs.Chmod(dirs[i].path, dirs[i].mode)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrSnapshotFailed, "copy %s -> %s failed", src, dst).
			WithDetail(errors.DetailPath, src)
	}
	return nil
}

// clear removes whatever is at target unless it already has the wanted
// kind. Directories are kept when a directory is wanted, so their content
// is overwritten in place.
func (n *NativeCopier) clear(lstater afero.Lstater, target string, wantDir bool) error {
	info, _, err := lstater.LstatIfPossible(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if wantDir && info.IsDir() {
		return nil
	}
	if !wantDir && info.Mode().IsRegular() {
		// truncated by copyFile
		return nil
	}
	return n.Fs.RemoveAll(target)
}

func (n *NativeCopier) copyFile(src, dst string, info os.FileInfo) error {
	in, err := n.Fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := n.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := n.Fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return n.Fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
