package ledger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/rs/zerolog"
)

const generationsKey = "generations"

// Options configures a Ledger.
type Options struct {
	// Clock stamps new records. Defaults to RealClock.
	Clock Clock
}

// Ledger is the in-memory view of the ledger document. It is the only
// writer of the document; it is not safe for concurrent use.
type Ledger struct {
	path        string
	clock       Clock
	generations []types.Generation

	// extra holds unknown top-level keys.
	extra map[string]json.RawMessage

	logger zerolog.Logger
}

// Load reads the ledger at path. A missing document is created empty,
// along with its parent directories.
func Load(path string, opts Options) (*Ledger, error) {
	l := &Ledger{
		path:   path,
		clock:  opts.Clock,
		logger: logging.GetLogger("ledger").With().Str("path", path).Logger(),
	}
	if l.clock == nil {
		l.clock = RealClock{}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		l.logger.Info().Msg("Ledger not found, creating an empty one")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to create ledger directory").
				WithDetail(errors.DetailPath, filepath.Dir(path))
		}
		if err := l.persist(nil); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read ledger").
			WithDetail(errors.DetailPath, path)
	}

	if err := l.decode(data); err != nil {
		return nil, err
	}

	l.logger.Debug().Int("records", len(l.generations)).Msg("Ledger loaded")
	return l, nil
}

func (l *Ledger) decode(data []byte) error {
	corrupt := func(err error, msg string) *errors.DotgenError {
		return errors.Wrap(err, errors.ErrCorruptLedger, msg).WithDetail(errors.DetailPath, l.path)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return corrupt(err, "ledger is not a JSON object")
	}

	raw, ok := top[generationsKey]
	if !ok {
		return errors.New(errors.ErrCorruptLedger, `ledger has no "generations" key`).
			WithDetail(errors.DetailPath, l.path)
	}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New(errors.ErrCorruptLedger, `ledger "generations" is null`).
			WithDetail(errors.DetailPath, l.path)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return corrupt(err, `ledger "generations" is not a list`)
	}

	seen := make(map[int]bool, len(records))
	gens := make([]types.Generation, 0, len(records))
	for i, rec := range records {
		// Decode through the method directly: json.Unmarshal zeroes a slice
		// element on null without consulting UnmarshalJSON.
		var g types.Generation
		if err := g.UnmarshalJSON(rec); err != nil {
			return corrupt(err, "invalid generation record").WithDetail("index", i)
		}
		if seen[g.ID] {
			return errors.Newf(errors.ErrCorruptLedger, "duplicate generation id %d", g.ID).
				WithDetail(errors.DetailPath, l.path).
				WithDetail("index", i)
		}
		seen[g.ID] = true
		gens = append(gens, g)
	}

	delete(top, generationsKey)
	if len(top) > 0 {
		l.extra = top
	}
	l.generations = gens
	return nil
}

// Path returns the ledger document location.
func (l *Ledger) Path() string {
	return l.path
}

// All returns every record in ledger order, archived ones included.
func (l *Ledger) All() []types.Generation {
	out := make([]types.Generation, len(l.generations))
	copy(out, l.generations)
	return out
}

// ListActive returns the non-archived records, newest first.
func (l *Ledger) ListActive() []types.Generation {
	var out []types.Generation
	for _, g := range l.generations {
		if g.IsActive() {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Get returns the record with id, archived or not.
func (l *Ledger) Get(id int) (types.Generation, error) {
	if i := l.index(id); i >= 0 {
		return l.generations[i], nil
	}
	return types.Generation{}, errors.Newf(errors.ErrNotFound, "generation %d not found", id).
		WithDetail("id", id)
}

// NextID returns the id the next Append will allocate.
func (l *Ledger) NextID() int {
	maxID := 0
	for _, g := range l.generations {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	return maxID + 1
}

// Append records a new active generation and persists the ledger.
func (l *Ledger) Append(revision, description string) (types.Generation, error) {
	g := types.Generation{
		ID:             l.NextID(),
		Date:           l.clock.Now().Truncate(time.Second),
		SourceRevision: revision,
		Description:    description,
		Status:         types.StatusActive,
	}

	next := make([]types.Generation, len(l.generations), len(l.generations)+1)
	copy(next, l.generations)
	next = append(next, g)

	if err := l.persist(next); err != nil {
		return types.Generation{}, err
	}
	l.generations = next

	l.logger.Info().
		Int("id", g.ID).
		Str("revision", g.ShortRevision()).
		Str("description", description).
		Msg("Generation recorded")
	return g, nil
}

// Archive marks a generation archived. Archiving an archived generation is a
// no-op.
func (l *Ledger) Archive(id int) error {
	i := l.index(id)
	if i < 0 {
		return errors.Newf(errors.ErrNotFound, "generation %d not found", id).WithDetail("id", id)
	}
	if !l.generations[i].IsActive() {
		l.logger.Debug().Int("id", id).Msg("Generation already archived")
		return nil
	}

	next := l.All()
	next[i].Status = types.StatusArchived
	if err := l.persist(next); err != nil {
		return err
	}
	l.generations = next

	l.logger.Info().Int("id", id).Msg("Generation archived")
	return nil
}

func (l *Ledger) index(id int) int {
	for i, g := range l.generations {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// persist writes gens atomically. The in-memory state is only replaced by
// the caller once this returns nil.
func (l *Ledger) persist(gens []types.Generation) error {
	doc := make(map[string]interface{}, len(l.extra)+1)
	for k, v := range l.extra {
		doc[k] = v
	}
	if gens == nil {
		gens = []types.Generation{}
	}
	doc[generationsKey] = gens

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode ledger")
	}
	data = append(data, '\n')

	if err := writeFileAtomic(l.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write ledger").
			WithDetail(errors.DetailPath, l.path)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
