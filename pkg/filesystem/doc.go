// Package filesystem provides filesystem implementations for dotgen.
//
// The symlink reconciler only talks to the types.FS interface, so tests can
// substitute a filesystem that injects failures.
package filesystem
