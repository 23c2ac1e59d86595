package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_UnmarshalLedgerRecord(t *testing.T) {
	data := `{
		"id": 3,
		"date": "2025-03-14 09:26:53",
		"commit_hash": "abc123def456",
		"description": "Update to 0f1e2d3",
		"archived": true,
		"host": "laptop"
	}`

	var g types.Generation
	require.NoError(t, json.Unmarshal([]byte(data), &g))

	assert.Equal(t, 3, g.ID)
	assert.True(t, g.Date.Equal(time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)))
	assert.Equal(t, "abc123def456", g.SourceRevision)
	assert.Equal(t, "Update to 0f1e2d3", g.Description)
	assert.Equal(t, types.StatusArchived, g.Status)
	assert.False(t, g.IsActive())
	assert.JSONEq(t, `"laptop"`, string(g.Extra["host"]))
}

func TestGeneration_MissingArchivedMeansActive(t *testing.T) {
	var g types.Generation
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "commit_hash": "abc"}`), &g))

	assert.Equal(t, types.StatusActive, g.Status)
	assert.True(t, g.IsActive())
	assert.Nil(t, g.Extra)
}

func TestGeneration_RoundTripPreservesUnknownFields(t *testing.T) {
	in := types.Generation{
		ID:             7,
		Date:           time.Date(2024, 12, 1, 18, 0, 5, 0, time.Local),
		SourceRevision: "deadbeefcafe",
		Description:    "Update to 1234567",
		Status:         types.StatusArchived,
		Extra: map[string]json.RawMessage{
			"tags": json.RawMessage(`["a","b"]`),
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"archived":true`)
	assert.Contains(t, string(data), `"date":"2024-12-01 18:00:05"`)

	var out types.Generation
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, in.ID, out.ID)
	assert.True(t, in.Date.Equal(out.Date))
	assert.Equal(t, in.SourceRevision, out.SourceRevision)
	assert.Equal(t, in.Description, out.Description)
	assert.Equal(t, in.Status, out.Status)
	assert.JSONEq(t, `["a","b"]`, string(out.Extra["tags"]))
}

func TestGeneration_RejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not_an_object", `[1, 2]`},
		{"null", `null`},
		{"missing_id", `{"commit_hash": "abc"}`},
		{"string_id", `{"id": "1"}`},
		{"zero_id", `{"id": 0}`},
		{"bad_date", `{"id": 1, "date": "yesterday"}`},
		{"archived_not_bool", `{"id": 1, "archived": "no"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g types.Generation
			assert.Error(t, json.Unmarshal([]byte(tt.data), &g))
		})
	}
}

func TestParseDate_AcceptsRFC3339(t *testing.T) {
	d, err := types.ParseDate("2025-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestGeneration_LabelAndShortRevision(t *testing.T) {
	g := types.Generation{
		ID:             2,
		Date:           time.Date(2025, 5, 6, 7, 8, 9, 0, time.Local),
		SourceRevision: "0123456789abcdef",
		Description:    "Update to fedcba9",
	}

	assert.Equal(t, "0123456", g.ShortRevision())
	assert.Equal(t, "2: 2025-05-06 07:08:09 - Update to fedcba9", g.Label())
	assert.Equal(t, "abc", types.ShortRevision("abc"))
}
