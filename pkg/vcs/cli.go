package vcs

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/rs/zerolog"
)

// CLI implements Repository by running the git binary in the work tree.
type CLI struct {
	path   string
	git    string
	remote string
	keep   []string
	logger zerolog.Logger
}

// OpenCLI checks that git is available and path is a work tree.
func OpenCLI(path string, opts Options) (*CLI, error) {
	git := opts.GitPath
	if git == "" {
		git = "git"
	}
	if _, err := exec.LookPath(git); err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCS, "git binary %q not found", git)
	}

	c := &CLI{
		path:   path,
		git:    git,
		remote: opts.Remote,
		keep:   opts.Keep,
		logger: logging.GetLogger("vcs").With().Str("backend", BackendCLI).Logger(),
	}
	if _, err := c.run(context.Background(), "rev-parse", "--git-dir"); err != nil {
		return nil, err
	}
	return c, nil
}

// run executes git and returns trimmed stdout. Failures carry the exit
// code and both output streams.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	logging.LogCommand(c.git, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.git, args...)
	cmd.Dir = c.path
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", errors.Wrapf(err, errors.ErrVCS, "git %s failed", strings.Join(args, " ")).
			WithDetail(errors.DetailCommand, c.git+" "+strings.Join(args, " ")).
			WithDetail(errors.DetailExitCode, exitCode).
			WithDetail(errors.DetailOutput, strings.TrimSpace(stderr.String()+"\n"+stdout.String())).
			WithDetail(DetailStdout, stdout.String()).
			WithDetail(DetailStderr, stderr.String()).
			WithDetail(errors.DetailPath, c.path)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (c *CLI) Head(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "HEAD")
}

func (c *CLI) HasLocalChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (c *CLI) FetchTags(ctx context.Context) error {
	_, err := c.run(ctx, "fetch", "--tags", c.remote)
	return err
}

func (c *CLI) LatestTag(ctx context.Context) (Tag, error) {
	rev, err := c.run(ctx, "rev-list", "--tags", "--max-count=1")
	if err != nil {
		return Tag{}, err
	}
	if rev == "" {
		return Tag{}, errors.New(errors.ErrNotFound, "repository has no tags").
			WithDetail(errors.DetailPath, c.path)
	}

	out, err := c.run(ctx, "tag", "--points-at", rev, "--sort=-refname")
	if err != nil {
		return Tag{}, err
	}
	names := strings.Fields(out)
	if len(names) == 0 {
		return Tag{}, errors.Newf(errors.ErrNotFound, "no tag points at %s", rev)
	}
	return Tag{Name: names[0], Revision: rev}, nil
}

func (c *CLI) Checkout(ctx context.Context, rev string) error {
	_, err := c.run(ctx, "checkout", "--quiet", rev)
	return err
}

func (c *CLI) Pull(ctx context.Context) error {
	_, err := c.run(ctx, "pull", "--ff-only", "--quiet")
	return err
}

func (c *CLI) ResetHard(ctx context.Context, rev string) error {
	_, err := c.run(ctx, "reset", "--hard", "--quiet", rev)
	return err
}

func (c *CLI) Clean(ctx context.Context) error {
	args := []string{"clean", "-f", "-d", "--quiet"}
	for _, k := range c.keep {
		if k = strings.Trim(k, "/"); k != "" {
			args = append(args, "-e", "/"+k)
		}
	}
	_, err := c.run(ctx, args...)
	return err
}
