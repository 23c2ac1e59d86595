package snapshot

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
)

// Excludes lists what a copier must skip.
type Excludes struct {
	// Names are skipped at any depth.
	Names []string

	// Root entries are only skipped directly under the source root.
	Root []string
}

func (x Excludes) skip(rel string) bool {
	base := filepath.Base(rel)
	for _, n := range x.Names {
		if base == n {
			return true
		}
	}
	for _, r := range x.Root {
		if rel == r {
			return true
		}
	}
	return false
}

// Copier is the filesystem copy collaborator.
type Copier interface {
	Name() string
	Copy(ctx context.Context, src, dst string, excludes Excludes) error
}

// RsyncCopier copies with `rsync -a`.
type RsyncCopier struct {
	// Path to the rsync binary. Defaults to "rsync".
	Path string
}

func (r *RsyncCopier) Name() string { return "rsync" }

func (r *RsyncCopier) binary() string {
	if r.Path == "" {
		return "rsync"
	}
	return r.Path
}

// Args returns the rsync argument list for a copy.
func (r *RsyncCopier) Args(src, dst string, excludes Excludes) []string {
	args := []string{"-a"}
	for _, n := range excludes.Names {
		args = append(args, "--exclude="+n)
	}
	for _, root := range excludes.Root {
		// a leading slash anchors the pattern at the transfer root
		args = append(args, "--exclude=/"+root)
	}
	return append(args, withSlash(src), withSlash(dst))
}

func withSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func (r *RsyncCopier) Copy(ctx context.Context, src, dst string, excludes Excludes) error {
	args := r.Args(src, dst, excludes)
	logging.LogCommand(r.binary(), args)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return errors.Wrapf(err, errors.ErrSnapshotFailed, "rsync %s -> %s failed", src, dst).
			WithDetail(errors.DetailExitCode, exitCode).
			WithDetail(errors.DetailOutput, out.String()).
			WithDetail(errors.DetailCommand, r.binary()+" "+strings.Join(args, " "))
	}
	return nil
}
