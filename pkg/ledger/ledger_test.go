// pkg/ledger/ledger_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test id allocation, archival, persistence and corruption handling

package ledger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/ledger"
	"github.com/arthur-debert/dotgen/pkg/testutil"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "generations", "generations.json")
}

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := ledgerPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func ids(gens []types.Generation) []int {
	out := make([]int, 0, len(gens))
	for _, g := range gens {
		out = append(out, g.ID)
	}
	return out
}

func TestLoad_MissingDocumentIsCreated(t *testing.T) {
	path := ledgerPath(t)

	l, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)
	assert.Empty(t, l.All())
	assert.Equal(t, 1, l.NextID())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"generations": []}`, string(data))
}

func TestAppend_EmptyLedgerGetsIDOne(t *testing.T) {
	clock := testutil.FixedClock()
	l, err := ledger.Load(ledgerPath(t), ledger.Options{Clock: clock})
	require.NoError(t, err)

	g, err := l.Append("abc123", "Update to def4567")
	require.NoError(t, err)

	assert.Equal(t, 1, g.ID)
	assert.Equal(t, types.StatusActive, g.Status)
	assert.Equal(t, "abc123", g.SourceRevision)
	assert.True(t, g.Date.Equal(clock.Now()))

	active := l.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, g, active[0])
}

func TestAppend_IDsStrictlyIncreaseAcrossArchives(t *testing.T) {
	l, err := ledger.Load(ledgerPath(t), ledger.Options{Clock: testutil.FixedClock()})
	require.NoError(t, err)

	var got []int
	for i := 0; i < 3; i++ {
		g, err := l.Append("rev", "Update")
		require.NoError(t, err)
		got = append(got, g.ID)
	}
	require.NoError(t, l.Archive(3))
	require.NoError(t, l.Archive(1))

	g, err := l.Append("rev", "Update")
	require.NoError(t, err)
	got = append(got, g.ID)

	// archiving the highest id must not free it for reuse
	assert.Equal(t, []int{1, 2, 3, 4}, got)
	assert.Equal(t, 5, l.NextID())
}

func TestNextID_UsesMaxNotCount(t *testing.T) {
	path := writeLedger(t, `{"generations": [
		{"id": 2, "date": "2024-01-01 00:00:00", "commit_hash": "a", "description": "x", "archived": false},
		{"id": 9, "date": "2024-01-02 00:00:00", "commit_hash": "b", "description": "y", "archived": true}
	]}`)

	l, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)
	assert.Equal(t, 10, l.NextID())
}

func TestArchive(t *testing.T) {
	l, err := ledger.Load(ledgerPath(t), ledger.Options{Clock: testutil.FixedClock()})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := l.Append("rev", "Update")
		require.NoError(t, err)
	}

	t.Run("hides_from_active_keeps_in_get", func(t *testing.T) {
		require.NoError(t, l.Archive(2))

		assert.Equal(t, []int{3, 1}, ids(l.ListActive()))
		g, err := l.Get(2)
		require.NoError(t, err)
		assert.Equal(t, types.StatusArchived, g.Status)
		assert.Len(t, l.All(), 3)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, l.Archive(2))
		assert.Equal(t, []int{3, 1}, ids(l.ListActive()))
	})

	t.Run("unknown_id", func(t *testing.T) {
		err := l.Archive(42)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestGet_NotFound(t *testing.T) {
	l, err := ledger.Load(ledgerPath(t), ledger.Options{})
	require.NoError(t, err)

	_, err = l.Get(1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestListActive_NewestFirst(t *testing.T) {
	path := writeLedger(t, `{"generations": [
		{"id": 3, "commit_hash": "c"},
		{"id": 1, "commit_hash": "a"},
		{"id": 2, "commit_hash": "b"}
	]}`)

	l, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 1}, ids(l.ListActive()))
	// All keeps document order
	assert.Equal(t, []int{3, 1, 2}, ids(l.All()))
}

func TestPersistence_RoundTripsRecordsAndUnknownFields(t *testing.T) {
	path := writeLedger(t, `{
		"version": 2,
		"generations": [
			{"id": 1, "date": "2024-03-01 08:00:00", "commit_hash": "aaa", "description": "Update to bbb", "archived": false, "host": "desk"}
		]
	}`)
	clock := testutil.NewStubClock(time.Date(2024, 3, 2, 9, 30, 15, 0, time.Local))

	l, err := ledger.Load(path, ledger.Options{Clock: clock})
	require.NoError(t, err)
	_, err = l.Append("bbb", "Update to ccc")
	require.NoError(t, err)
	require.NoError(t, l.Archive(1))

	reloaded, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)
	assert.Equal(t, l.All(), reloaded.All())

	var doc map[string]json.RawMessage
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `2`, string(doc["version"]))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["generations"], &records))
	require.Len(t, records, 2)
	assert.Equal(t, "desk", records[0]["host"])
	assert.Equal(t, true, records[0]["archived"])
	assert.Equal(t, "2024-03-02 09:30:15", records[1]["date"])
}

func TestPersistence_LeavesNoTempFiles(t *testing.T) {
	path := ledgerPath(t)
	l, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)
	_, err = l.Append("rev", "Update")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "generations.json", entries[0].Name())
}

func TestAppend_FailedWriteLeavesLedgerUnchanged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	path := ledgerPath(t)
	l, err := ledger.Load(path, ledger.Options{})
	require.NoError(t, err)
	_, err = l.Append("rev", "Update")
	require.NoError(t, err)

	dir := filepath.Dir(path)
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	_, err = l.Append("rev2", "Update again")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	assert.Equal(t, []int{1}, ids(l.All()))
	assert.Equal(t, 2, l.NextID())
}

func TestLoad_CorruptLedger(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not_json", `{"generations": [`},
		{"top_level_array", `[]`},
		{"top_level_null", `null`},
		{"missing_key", `{"gens": []}`},
		{"key_not_a_list", `{"generations": {"id": 1}}`},
		{"key_null", `{"generations": null}`},
		{"record_not_object", `{"generations": [1]}`},
		{"record_null", `{"generations": [null]}`},
		{"record_without_id", `{"generations": [{"commit_hash": "a"}]}`},
		{"record_negative_id", `{"generations": [{"id": -1}]}`},
		{"duplicate_ids", `{"generations": [{"id": 1}, {"id": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLedger(t, tt.content)

			_, err := ledger.Load(path, ledger.Options{})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrCorruptLedger), "got %v", err)

			// never auto-repaired
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(data))
		})
	}
}
