// Package display holds the presentation model shared by every renderer.
// Converters build these from orchestrator results; renderers never see
// domain types directly.
package display

import (
	"time"

	"github.com/arthur-debert/dotgen/pkg/errors"
)

// CommandResult is the top-level structure every command renders.
//
//	<Optional Message>
//	<generations | items | update summary>
type CommandResult struct {
	Command     string              `json:"command" yaml:"command"`
	Message     string              `json:"message,omitempty" yaml:"message,omitempty"`
	Generations []DisplayGeneration `json:"generations,omitempty" yaml:"generations,omitempty"`
	Items       []DisplayItem       `json:"items,omitempty" yaml:"items,omitempty"`
	Update      *DisplayUpdate      `json:"update,omitempty" yaml:"update,omitempty"`
	Timestamp   time.Time           `json:"timestamp" yaml:"timestamp"`
}

// DisplayGeneration is one ledger record.
type DisplayGeneration struct {
	ID          int    `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Revision    string `json:"revision" yaml:"revision"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
}

// Archived reports whether the record is hidden from selection.
func (g DisplayGeneration) Archived() bool {
	return g.Status == "archived"
}

// DisplayItem is one managed item and its link state.
type DisplayItem struct {
	Name       string `json:"name" yaml:"name"`
	Group      string `json:"group" yaml:"group"`
	State      string `json:"state" yaml:"state"`
	Target     string `json:"target" yaml:"target"`
	LinkTarget string `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty"`

	// Error is set when the last operation on the item failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DisplayUpdate summarises one update run.
type DisplayUpdate struct {
	Mode       string `json:"mode" yaml:"mode"`
	Before     string `json:"before" yaml:"before"`
	After      string `json:"after" yaml:"after"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
	NoOp       string `json:"noOp,omitempty" yaml:"noOp,omitempty"`
	Generation int    `json:"generation,omitempty" yaml:"generation,omitempty"`
	Enabled    int    `json:"enabled" yaml:"enabled"`
	Skipped    int    `json:"skipped" yaml:"skipped"`
}

// ErrorInfo is the machine-readable form of an error.
type ErrorInfo struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code" yaml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorInfo extracts the code and details of a structured error.
func NewErrorInfo(err error) ErrorInfo {
	info := ErrorInfo{
		Error: err.Error(),
		Code:  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		info.Details = details
	}
	return info
}
