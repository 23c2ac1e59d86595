package links

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotgen/pkg/confirm"
	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/paths"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Reconciler.
type Options struct {
	FS    types.FS
	Paths paths.Paths

	Minimal []string
	Extra   []string

	// Confirmer is asked before replacing anything the reconciler does not
	// own. Defaults to declining.
	Confirmer confirm.Confirmer
}

// Reconciler enables and disables managed items.
type Reconciler struct {
	fs        types.FS
	paths     paths.Paths
	minimal   []string
	extra     []string
	confirmer confirm.Confirmer
	logger    zerolog.Logger
}

// New returns a Reconciler.
func New(opts Options) *Reconciler {
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = confirm.Always(false)
	}
	return &Reconciler{
		fs:        opts.FS,
		paths:     opts.Paths,
		minimal:   opts.Minimal,
		extra:     opts.Extra,
		confirmer: confirmer,
		logger:    logging.GetLogger("links"),
	}
}

func (r *Reconciler) item(name string, group types.ItemGroup) types.ManagedItem {
	return types.ManagedItem{
		Name:   name,
		Group:  group,
		Source: r.paths.ItemSource(name),
		Target: r.paths.ItemTarget(name),
	}
}

// AllItems returns the minimal and extra items, in that order.
func (r *Reconciler) AllItems() []types.ManagedItem {
	items := make([]types.ManagedItem, 0, len(r.minimal)+len(r.extra))
	for _, n := range r.minimal {
		items = append(items, r.item(n, types.GroupMinimal))
	}
	for _, n := range r.extra {
		items = append(items, r.item(n, types.GroupExtra))
	}
	return items
}

// Items returns the active set: the minimal items, plus the extra items
// when the full-install marker exists.
func (r *Reconciler) Items() []types.ManagedItem {
	full := r.paths.IsFullInstall()
	var items []types.ManagedItem
	for _, it := range r.AllItems() {
		if it.Group == types.GroupMinimal || full {
			items = append(items, it)
		}
	}
	return items
}

// Lookup finds a configured item by name.
func (r *Reconciler) Lookup(name string) (types.ManagedItem, error) {
	for _, it := range r.AllItems() {
		if it.Name == name {
			return it, nil
		}
	}
	return types.ManagedItem{}, errors.Newf(errors.ErrNotFound, "unknown item %q", name).
		WithDetail("item", name)
}

// State probes the item. It never modifies anything.
func (r *Reconciler) State(item types.ManagedItem) types.LinkState {
	return r.Status(item).State
}

// Status probes the item and also reports the raw link destination.
func (r *Reconciler) Status(item types.ManagedItem) types.ItemStatus {
	st := types.ItemStatus{Item: item}

	// sources are config directories; anything else counts as missing
	if info, err := r.fs.Stat(item.Source); err != nil || !info.IsDir() {
		st.State = types.LinkSourceMissing
		return st
	}

	info, err := r.fs.Lstat(item.Target)
	if os.IsNotExist(err) {
		st.State = types.LinkDisabled
		return st
	}
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		st.State = types.LinkUnmanaged
		return st
	}

	dest, err := r.fs.Readlink(item.Target)
	if err != nil {
		st.State = types.LinkUnmanaged
		return st
	}
	st.LinkTarget = dest

	if r.pointsAtSource(item, dest) {
		st.State = types.LinkEnabled
	} else {
		st.State = types.LinkEnabledExternal
	}
	return st
}

func (r *Reconciler) pointsAtSource(item types.ManagedItem, dest string) bool {
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(item.Target), dest)
	}
	if filepath.Clean(dest) == filepath.Clean(item.Source) {
		return true
	}

	// the same directory reached through other symlinks
	resolved, err := r.fs.EvalSymlinks(item.Target)
	if err != nil {
		return false
	}
	source, err := r.fs.EvalSymlinks(item.Source)
	if err != nil {
		return false
	}
	return resolved == source
}

// StatusAll probes every configured item.
func (r *Reconciler) StatusAll() []types.ItemStatus {
	items := r.AllItems()
	out := make([]types.ItemStatus, 0, len(items))
	for _, it := range items {
		out = append(out, r.Status(it))
	}
	return out
}

// Enable links item into the deploy dir.
func (r *Reconciler) Enable(item types.ManagedItem) error {
	logger := r.logger.With().Str("item", item.Name).Logger()
	state := r.State(item)

	switch state {
	case types.LinkSourceMissing:
		return errors.Newf(errors.ErrSourceMissing, "no source for %s at %s", item.Name, item.Source).
			WithDetail(errors.DetailPath, item.Source)

	case types.LinkEnabled:
		logger.Debug().Msg("Already enabled")
		return nil

	case types.LinkUnmanaged, types.LinkEnabledExternal:
		prompt := fmt.Sprintf("%s exists (%s). Replace it with a link to %s?", item.Target, state, item.Source)
		ok, err := r.confirmer.Confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf(errors.ErrLinkConflict, "%s exists and was not replaced", item.Target).
				WithDetail(errors.DetailPath, item.Target).
				WithDetail("state", string(state))
		}

		remove := r.fs.Remove
		if state == types.LinkUnmanaged {
			remove = r.fs.RemoveAll
		}
		if err := remove(item.Target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", item.Target).
				WithDetail(errors.DetailPath, item.Target)
		}
		logger.Info().Str("state", string(state)).Msg("Replaced existing target")

	case types.LinkDisabled:
		if err := r.fs.MkdirAll(filepath.Dir(item.Target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", filepath.Dir(item.Target)).
				WithDetail(errors.DetailPath, filepath.Dir(item.Target))
		}
	}

	if err := r.fs.Symlink(item.Source, item.Target); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to link %s", item.Target).
			WithDetail(errors.DetailPath, item.Target)
	}
	logger.Info().Str("target", item.Target).Msg("Enabled")
	return nil
}

// Disable removes the item's link if the reconciler owns it. Anything else
// at the target is left alone.
func (r *Reconciler) Disable(item types.ManagedItem) error {
	logger := r.logger.With().Str("item", item.Name).Logger()

	if state := r.State(item); state != types.LinkEnabled {
		logger.Debug().Str("state", string(state)).Msg("Nothing to disable")
		return nil
	}
	if err := r.fs.Remove(item.Target); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove link %s", item.Target).
			WithDetail(errors.DetailPath, item.Target)
	}
	logger.Info().Msg("Disabled")
	return nil
}
