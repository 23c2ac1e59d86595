package testutil

import (
	"context"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/vcs"
)

// FakeRepo is an in-memory vcs.Repository. Errors set in Fail are returned
// by the method of the same name.
type FakeRepo struct {
	HeadRev string
	Dirty   bool

	// Tags in commit order; the last one is the latest.
	Tags []vcs.Tag

	// PullTo is HEAD after a Pull. Empty leaves HEAD unchanged.
	PullTo string

	Fail  map[string]error
	Calls []string
}

var _ vcs.Repository = (*FakeRepo)(nil)

func (f *FakeRepo) call(name string) error {
	f.Calls = append(f.Calls, name)
	return f.Fail[name]
}

// Called reports whether method name was invoked.
func (f *FakeRepo) Called(name string) bool {
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *FakeRepo) Head(ctx context.Context) (string, error) {
	if err := f.call("Head"); err != nil {
		return "", err
	}
	return f.HeadRev, nil
}

func (f *FakeRepo) HasLocalChanges(ctx context.Context) (bool, error) {
	if err := f.call("HasLocalChanges"); err != nil {
		return false, err
	}
	return f.Dirty, nil
}

func (f *FakeRepo) FetchTags(ctx context.Context) error {
	return f.call("FetchTags")
}

func (f *FakeRepo) LatestTag(ctx context.Context) (vcs.Tag, error) {
	if err := f.call("LatestTag"); err != nil {
		return vcs.Tag{}, err
	}
	if len(f.Tags) == 0 {
		return vcs.Tag{}, errors.New(errors.ErrNotFound, "repository has no tags")
	}
	return f.Tags[len(f.Tags)-1], nil
}

func (f *FakeRepo) Checkout(ctx context.Context, rev string) error {
	if err := f.call("Checkout"); err != nil {
		return err
	}
	f.HeadRev = rev
	return nil
}

func (f *FakeRepo) Pull(ctx context.Context) error {
	if err := f.call("Pull"); err != nil {
		return err
	}
	if f.PullTo != "" {
		f.HeadRev = f.PullTo
	}
	return nil
}

func (f *FakeRepo) ResetHard(ctx context.Context, rev string) error {
	if err := f.call("ResetHard"); err != nil {
		return err
	}
	f.HeadRev = rev
	return nil
}

func (f *FakeRepo) Clean(ctx context.Context) error {
	return f.call("Clean")
}

// FakeLinker records batch calls in order.
type FakeLinker struct {
	Calls      []string
	DisableErr error
	EnableErr  error
}

func (f *FakeLinker) DisableAll() (*links.BatchResult, error) {
	f.Calls = append(f.Calls, "DisableAll")
	return &links.BatchResult{}, f.DisableErr
}

func (f *FakeLinker) EnableAll() (*links.BatchResult, error) {
	f.Calls = append(f.Calls, "EnableAll")
	return &links.BatchResult{}, f.EnableErr
}
