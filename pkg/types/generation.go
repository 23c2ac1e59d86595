package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the on-disk layout of a generation's creation time.
const DateLayout = "2006-01-02 15:04:05"

// Status is the lifecycle status of a generation record.
type Status string

const (
	// StatusActive generations are offered for rollback and deletion.
	StatusActive Status = "active"

	// StatusArchived generations are hidden from selection. The record is
	// kept forever, its backup directory may or may not still exist.
	StatusArchived Status = "archived"
)

// Generation is a recorded, restorable pre-update state of the repository.
type Generation struct {
	ID int `json:"id" yaml:"id"`

	Date time.Time `json:"date" yaml:"date"`

	// SourceRevision is the commit that was checked out before the update
	// that created this generation. Rolling back resets to it.
	SourceRevision string `json:"commit_hash" yaml:"commit_hash"`

	Description string `json:"description" yaml:"description"`

	Status Status `json:"status" yaml:"status"`

	// Extra holds record fields this version does not know about. They are
	// written back unchanged.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// IsActive reports whether the generation can still be selected.
func (g Generation) IsActive() bool {
	return g.Status != StatusArchived
}

// ShortRevision returns the first seven characters of the source revision.
func (g Generation) ShortRevision() string {
	return ShortRevision(g.SourceRevision)
}

// Label is the one-line form used in selection lists.
func (g Generation) Label() string {
	return fmt.Sprintf("%d: %s - %s", g.ID, g.Date.Format(DateLayout), g.Description)
}

// ShortRevision abbreviates a revision the way git does by default.
func ShortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

var knownGenerationFields = []string{"id", "date", "commit_hash", "description", "archived"}

// MarshalJSON writes the ledger record format. Status is stored as the
// "archived" boolean so ledgers stay readable by older versions.
func (g Generation) MarshalJSON() ([]byte, error) {
	record := make(map[string]interface{}, len(g.Extra)+len(knownGenerationFields))
	for k, v := range g.Extra {
		record[k] = v
	}
	record["id"] = g.ID
	record["date"] = g.Date.Format(DateLayout)
	record["commit_hash"] = g.SourceRevision
	record["description"] = g.Description
	record["archived"] = g.Status == StatusArchived
	return json.Marshal(record)
}

// UnmarshalJSON reads a ledger record, keeping unknown fields in Extra.
func (g *Generation) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("generation record is not an object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("generation record is null")
	}

	var out Generation

	idRaw, ok := raw["id"]
	if !ok {
		return fmt.Errorf("generation record has no id")
	}
	if err := json.Unmarshal(idRaw, &out.ID); err != nil {
		return fmt.Errorf("generation id is not an integer: %w", err)
	}
	if out.ID <= 0 {
		return fmt.Errorf("generation id %d is not positive", out.ID)
	}

	if dateRaw, ok := raw["date"]; ok {
		var s string
		if err := json.Unmarshal(dateRaw, &s); err != nil {
			return fmt.Errorf("generation %d: date is not a string: %w", out.ID, err)
		}
		date, err := ParseDate(s)
		if err != nil {
			return fmt.Errorf("generation %d: %w", out.ID, err)
		}
		out.Date = date
	}

	if revRaw, ok := raw["commit_hash"]; ok {
		if err := json.Unmarshal(revRaw, &out.SourceRevision); err != nil {
			return fmt.Errorf("generation %d: commit_hash is not a string: %w", out.ID, err)
		}
	}

	if descRaw, ok := raw["description"]; ok {
		if err := json.Unmarshal(descRaw, &out.Description); err != nil {
			return fmt.Errorf("generation %d: description is not a string: %w", out.ID, err)
		}
	}

	out.Status = StatusActive
	if archivedRaw, ok := raw["archived"]; ok {
		var archived bool
		if err := json.Unmarshal(archivedRaw, &archived); err != nil {
			return fmt.Errorf("generation %d: archived is not a boolean: %w", out.ID, err)
		}
		if archived {
			out.Status = StatusArchived
		}
	}

	for _, k := range knownGenerationFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}

	*g = out
	return nil
}

// ParseDate accepts the ledger layout (local time) and RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	return t, nil
}
