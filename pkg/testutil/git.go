package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// commitEpoch is the author time of the first commit of every GitRepo.
// Each further commit is one minute later, so "newest" is deterministic.
var commitEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a real repository on disk driven through go-git.
type GitRepo struct {
	Path string
	Repo *gogit.Repository

	t       *testing.T
	commits int
}

// NewGitRepo initialises an empty repository on branch main.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	return initGitRepo(t, t.TempDir())
}

func initGitRepo(t *testing.T, dir string) *GitRepo {
	t.Helper()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	require.NoError(t, err)

	return &GitRepo{Path: dir, Repo: repo, t: t}
}

// WriteFile writes content at rel inside the work tree, creating parents.
func (r *GitRepo) WriteFile(rel, content string) {
	r.t.Helper()
	path := filepath.Join(r.Path, rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0644))
}

// Commit stages every change (additions and deletions) and commits it,
// returning the new commit hash.
func (r *GitRepo) Commit(message string) string {
	r.t.Helper()

	w, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, w.AddWithOptions(&gogit.AddOptions{All: true}))

	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author:            r.signature(),
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	r.commits++
	return hash.String()
}

// Tag creates a lightweight tag at HEAD.
func (r *GitRepo) Tag(name string) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, r.headHash(), nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *GitRepo) AnnotatedTag(name, message string) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, r.headHash(), &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	require.NoError(r.t, err)
}

// Head returns the commit hash HEAD points at.
func (r *GitRepo) Head() string {
	r.t.Helper()
	return r.headHash().String()
}

// Clone clones the repository into a fresh temp dir. The clone's origin is
// r, so fetch and pull in the clone see later commits made to r.
func (r *GitRepo) Clone() *GitRepo {
	r.t.Helper()
	return r.CloneTo(r.t.TempDir())
}

// CloneTo clones the repository into dir.
func (r *GitRepo) CloneTo(dir string) *GitRepo {
	r.t.Helper()

	repo, err := gogit.PlainClone(dir, false, &gogit.CloneOptions{URL: r.Path})
	require.NoError(r.t, err)

	return &GitRepo{Path: dir, Repo: repo, t: r.t, commits: r.commits}
}

func (r *GitRepo) headHash() plumbing.Hash {
	ref, err := r.Repo.Head()
	require.NoError(r.t, err)
	return ref.Hash()
}

func (r *GitRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  commitEpoch.Add(time.Duration(r.commits) * time.Minute),
	}
}
