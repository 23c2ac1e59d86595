// Package types defines the core types shared across dotgen: generations and
// their status, managed configuration items and their derived link state, and
// the filesystem interface the reconciler probes through.
package types
