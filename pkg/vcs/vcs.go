// Package vcs is the version control collaborator of the update and
// rollback flows. Two backends implement Repository: go-git (the default,
// needs no git binary) and the git command line.
package vcs

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotgen/pkg/errors"
)

// Backend names
const (
	BackendGoGit = "gogit"
	BackendCLI   = "cli"
)

// Detail keys of CLI failures, next to errors.DetailExitCode.
const (
	DetailStdout = "stdout"
	DetailStderr = "stderr"
)

// Tag is a tag name and the commit it resolves to.
type Tag struct {
	Name     string
	Revision string
}

// Repository is the narrow set of operations the orchestrators need.
type Repository interface {
	// Head returns the full commit hash of HEAD.
	Head(ctx context.Context) (string, error)

	// HasLocalChanges reports modifications to tracked files, staged or
	// not. Untracked files do not count.
	HasLocalChanges(ctx context.Context) (bool, error)

	FetchTags(ctx context.Context) error

	// LatestTag returns the tag on the most recently committed tagged
	// commit. NOT_FOUND when the repository has no tags.
	LatestTag(ctx context.Context) (Tag, error)

	Checkout(ctx context.Context, rev string) error
	Pull(ctx context.Context) error
	ResetHard(ctx context.Context, rev string) error

	// Clean removes untracked files and directories, keeping ignored files
	// and the configured keep paths.
	Clean(ctx context.Context) error
}

// Options configures Open.
type Options struct {
	Backend string
	Remote  string

	// GitPath is the git binary of the cli backend.
	GitPath string

	// Keep are top-level paths that ResetHard and Clean must leave in place.
	Keep []string
}

// Open returns the repository at path through the selected backend.
func Open(path string, opts Options) (Repository, error) {
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	switch opts.Backend {
	case BackendGoGit, "":
		return OpenGoGit(path, opts)
	case BackendCLI:
		return OpenCLI(path, opts)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown vcs backend %q", opts.Backend)
	}
}

// kept reports whether rel (slash separated, relative to the work tree) is
// one of keep or lies beneath one.
func kept(rel string, keep []string) bool {
	for _, k := range keep {
		k = strings.Trim(k, "/")
		if k == "" {
			continue
		}
		if rel == k || strings.HasPrefix(rel, k+"/") {
			return true
		}
	}
	return false
}
