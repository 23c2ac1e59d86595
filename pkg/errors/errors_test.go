// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "generation 4 not found",
			wantStr: "[NOT_FOUND] generation 4 not found",
		},
		{
			name:    "corrupt_ledger_error",
			code:    errors.ErrCorruptLedger,
			message: "missing generations key",
			wantStr: "[CORRUPT_LEDGER] missing generations key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrSourceMissing, "no source for %s at %s", "waybar", "/repo/config/waybar")
	assert.Equal(t, "no source for waybar at /repo/config/waybar", err.Message)
	assert.Equal(t, errors.ErrSourceMissing, err.Code)
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "ignored %d", 1))
	})

	t.Run("wraps_cause", func(t *testing.T) {
		cause := stderrors.New("exit status 128")
		err := errors.Wrap(cause, errors.ErrUpdateFailed, "git pull failed")

		assert.Equal(t, "[UPDATE_FAILED] git pull failed: exit status 128", err.Error())
		assert.True(t, stderrors.Is(err, cause))
		assert.Equal(t, cause, stderrors.Unwrap(err))
	})
}

func TestError_IncludesCollaboratorOutput(t *testing.T) {
	err := errors.Wrap(stderrors.New("exit status 23"), errors.ErrSnapshotFailed, "rsync failed").
		WithDetail(errors.DetailExitCode, 23).
		WithDetail(errors.DetailOutput, "rsync: some files vanished\n")

	assert.Equal(t, "[SNAPSHOT_FAILED] rsync failed: exit status 23\nrsync: some files vanished", err.Error())
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrReconcilePartial, "partial").
		WithDetail("failed", []string{"rofi"}).
		WithDetails(map[string]interface{}{
			"succeeded": []string{"hypr", "waybar"},
		})

	assert.Equal(t, []string{"failed", "succeeded"}, err.DetailKeys())
	assert.Equal(t, []string{"rofi"}, errors.GetErrorDetails(err)["failed"])
}

func TestIs_MatchesByCode(t *testing.T) {
	err := errors.Newf(errors.ErrNotFound, "generation %d not found", 7)
	wrapped := fmt.Errorf("rollback: %w", err)

	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrNotFound, "")))
	assert.False(t, stderrors.Is(wrapped, errors.New(errors.ErrCorruptLedger, "")))
}

func TestErrorCodeHelpers(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrLinkConflict, "target exists"))

	require.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
	assert.False(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, errors.ErrLinkConflict, errors.GetErrorCode(err))

	plain := stderrors.New("plain")
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
}
