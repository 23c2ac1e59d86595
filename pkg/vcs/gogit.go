package vcs

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// GoGit implements Repository with go-git.
type GoGit struct {
	path   string
	remote string
	keep   []string
	repo   *gogit.Repository
	logger zerolog.Logger
}

// OpenGoGit opens the work tree at path.
func OpenGoGit(path string, opts Options) (*GoGit, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCS, "failed to open repository at %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return &GoGit{
		path:   path,
		remote: opts.Remote,
		keep:   opts.Keep,
		repo:   repo,
		logger: logging.GetLogger("vcs").With().Str("backend", BackendGoGit).Logger(),
	}, nil
}

func (g *GoGit) fail(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, errors.ErrVCS, format, args...).WithDetail(errors.DetailPath, g.path)
}

func (g *GoGit) Head(ctx context.Context) (string, error) {
	ref, err := g.repo.Head()
	if err != nil {
		return "", g.fail(err, "failed to read HEAD")
	}
	return ref.Hash().String(), nil
}

func (g *GoGit) HasLocalChanges(ctx context.Context) (bool, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return false, g.fail(err, "failed to open work tree")
	}
	status, err := w.Status()
	if err != nil {
		return false, g.fail(err, "failed to read status")
	}
	for file, s := range status {
		if s.Worktree == gogit.Untracked {
			continue
		}
		if s.Worktree != gogit.Unmodified || s.Staging != gogit.Unmodified {
			g.logger.Debug().Str("file", file).Msg("Local modification")
			return true, nil
		}
	}
	return false, nil
}

func (g *GoGit) FetchTags(ctx context.Context) error {
	g.logger.Debug().Str("remote", g.remote).Msg("Fetching tags")
	err := g.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: g.remote,
		Tags:       gogit.AllTags,
	})
	if err != nil && !stderrors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return g.fail(err, "failed to fetch tags from %s", g.remote)
	}
	return nil
}

func (g *GoGit) LatestTag(ctx context.Context) (Tag, error) {
	refs, err := g.repo.Tags()
	if err != nil {
		return Tag{}, g.fail(err, "failed to list tags")
	}

	var (
		best     Tag
		bestWhen time.Time
		found    bool
	)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		commit, err := g.tagCommit(ref.Hash())
		if err != nil {
			// tags on trees or blobs are not release candidates
			g.logger.Debug().Str("tag", ref.Name().Short()).Err(err).Msg("Skipping tag")
			return nil
		}
		when := commit.Committer.When
		name := ref.Name().Short()
		if !found || when.After(bestWhen) || (when.Equal(bestWhen) && name > best.Name) {
			best = Tag{Name: name, Revision: commit.Hash.String()}
			bestWhen = when
			found = true
		}
		return nil
	})
	if err != nil {
		return Tag{}, g.fail(err, "failed to walk tags")
	}
	if !found {
		return Tag{}, errors.New(errors.ErrNotFound, "repository has no tags").
			WithDetail(errors.DetailPath, g.path)
	}
	return best, nil
}

// tagCommit peels annotated tags down to their commit.
func (g *GoGit) tagCommit(h plumbing.Hash) (*object.Commit, error) {
	tag, err := g.repo.TagObject(h)
	switch {
	case err == nil:
		return tag.Commit()
	case stderrors.Is(err, plumbing.ErrObjectNotFound):
		return g.repo.CommitObject(h)
	default:
		return nil, err
	}
}

func (g *GoGit) resolve(rev string) (plumbing.Hash, error) {
	h, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	// ResolveRevision may stop at an annotated tag object
	if c, err := g.tagCommit(*h); err == nil {
		return c.Hash, nil
	}
	return *h, nil
}

func (g *GoGit) Checkout(ctx context.Context, rev string) error {
	h, err := g.resolve(rev)
	if err != nil {
		return g.fail(err, "unknown revision %s", rev)
	}
	w, err := g.repo.Worktree()
	if err != nil {
		return g.fail(err, "failed to open work tree")
	}
	if err := w.Checkout(&gogit.CheckoutOptions{Hash: h}); err != nil {
		return g.fail(err, "checkout of %s failed", rev)
	}
	g.logger.Info().Str("revision", h.String()).Msg("Checked out")
	return nil
}

func (g *GoGit) Pull(ctx context.Context) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return g.fail(err, "failed to open work tree")
	}
	err = w.PullContext(ctx, &gogit.PullOptions{RemoteName: g.remote})
	if err != nil && !stderrors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return g.fail(err, "pull from %s failed", g.remote)
	}
	return nil
}

// ResetHard moves HEAD, index and work tree to rev. go-git's hard reset also
// deletes untracked files, so the keep list is parked under .git meanwhile.
func (g *GoGit) ResetHard(ctx context.Context, rev string) (err error) {
	h, err := g.resolve(rev)
	if err != nil {
		return g.fail(err, "unknown revision %s", rev)
	}
	w, err := g.repo.Worktree()
	if err != nil {
		return g.fail(err, "failed to open work tree")
	}

	restore, err := g.parkKept()
	if err != nil {
		return g.fail(err, "failed to set aside kept paths")
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = g.fail(rerr, "failed to restore kept paths")
		}
	}()

	if err := w.Reset(&gogit.ResetOptions{Commit: h, Mode: gogit.HardReset}); err != nil {
		return g.fail(err, "reset to %s failed", rev)
	}
	g.logger.Info().Str("revision", h.String()).Msg("Reset")
	return nil
}

// parkKept renames every existing keep path into a scratch directory inside
// .git and returns the function that moves them back.
func (g *GoGit) parkKept() (func() error, error) {
	scratch, err := os.MkdirTemp(filepath.Join(g.path, ".git"), "dotgen-keep-")
	if err != nil {
		return nil, err
	}

	type parked struct{ from, to string }
	var moved []parked

	restore := func() error {
		for _, m := range moved {
			// a tracked path at the same place loses to the kept one
			if err := os.RemoveAll(m.from); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(m.from), 0755); err != nil {
				return err
			}
			if err := os.Rename(m.to, m.from); err != nil {
				return err
			}
			g.logger.Debug().Str("path", m.from).Msg("Restored kept path")
		}
		return os.RemoveAll(scratch)
	}

	for i, k := range g.keep {
		k = strings.Trim(k, "/")
		if k == "" {
			continue
		}
		from := filepath.Join(g.path, filepath.FromSlash(k))
		if _, err := os.Lstat(from); os.IsNotExist(err) {
			continue
		}
		to := filepath.Join(scratch, strconv.Itoa(i))
		if err := os.Rename(from, to); err != nil {
			_ = restore()
			return nil, err
		}
		moved = append(moved, parked{from: from, to: to})
	}
	return restore, nil
}

// Clean removes untracked files reported by status, then the directories
// left empty. go-git's own Worktree.Clean has no exclude list.
func (g *GoGit) Clean(ctx context.Context) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return g.fail(err, "failed to open work tree")
	}
	status, err := w.Status()
	if err != nil {
		return g.fail(err, "failed to read status")
	}

	for file, s := range status {
		if s.Worktree != gogit.Untracked || kept(file, g.keep) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(g.path, filepath.FromSlash(file))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return g.fail(err, "failed to remove %s", file)
		}
		g.logger.Debug().Str("file", file).Msg("Removed untracked file")
	}

	return g.pruneEmptyDirs()
}

func (g *GoGit) pruneEmptyDirs() error {
	var dirs []string
	err := filepath.Walk(g.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || path == g.path {
			return nil
		}
		rel := filepath.ToSlash(strings.TrimPrefix(path, g.path+string(filepath.Separator)))
		if rel == ".git" || kept(rel, g.keep) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return g.fail(err, "failed to scan work tree")
	}

	// deepest first so parents empty out before they are checked
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return g.fail(err, "failed to remove %s", dir)
		}
	}
	return nil
}
