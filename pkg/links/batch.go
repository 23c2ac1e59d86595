package links

import (
	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/types"
)

// ItemFailure is one item a batch could not reconcile.
type ItemFailure struct {
	Name string
	Err  error
}

// BatchResult is the outcome of EnableAll or DisableAll.
type BatchResult struct {
	Succeeded []string
	Skipped   []string
	Failed    []ItemFailure
}

// FailedNames lists the items that failed.
func (b *BatchResult) FailedNames() []string {
	names := make([]string, 0, len(b.Failed))
	for _, f := range b.Failed {
		names = append(names, f.Name)
	}
	return names
}

func (b *BatchResult) err(op string) error {
	if len(b.Failed) == 0 {
		return nil
	}
	err := errors.Newf(errors.ErrReconcilePartial, "%s: %d of %d items failed", op,
		len(b.Failed), len(b.Failed)+len(b.Succeeded)).
		WithDetail("succeeded", b.Succeeded).
		WithDetail("failed", b.FailedNames())
	if len(b.Failed) == 1 {
		err.Wrapped = b.Failed[0].Err
	}
	return err
}

// EnableAll enables the active set. Items without a source are skipped; a
// failing item does not stop the others.
func (r *Reconciler) EnableAll() (*BatchResult, error) {
	res := &BatchResult{}
	for _, it := range r.Items() {
		if r.State(it) == types.LinkSourceMissing {
			r.logger.Debug().Str("item", it.Name).Msg("Skipping item without source")
			res.Skipped = append(res.Skipped, it.Name)
			continue
		}
		if err := r.Enable(it); err != nil {
			r.logger.Warn().Str("item", it.Name).Err(err).Msg("Enable failed")
			res.Failed = append(res.Failed, ItemFailure{Name: it.Name, Err: err})
			continue
		}
		res.Succeeded = append(res.Succeeded, it.Name)
	}
	return res, res.err("enable")
}

// DisableAll disables the active set; a failing item does not stop the
// others.
func (r *Reconciler) DisableAll() (*BatchResult, error) {
	res := &BatchResult{}
	for _, it := range r.Items() {
		if err := r.Disable(it); err != nil {
			r.logger.Warn().Str("item", it.Name).Err(err).Msg("Disable failed")
			res.Failed = append(res.Failed, ItemFailure{Name: it.Name, Err: err})
			continue
		}
		res.Succeeded = append(res.Succeeded, it.Name)
	}
	return res, res.err("disable")
}
