// Package snapshot copies a repository tree for later restoration.
//
// A snapshot is a full recursive copy that keeps permissions and copies
// symlinks as symlinks. Version control metadata (.git, .gitignore at any
// depth) and the generation store at the top of the tree are never copied.
// Copying into a non-empty destination overwrites what is there, so an
// interrupted snapshot can simply be retried.
//
// Two copiers are available: rsync, driven as an external command, and a
// native copier walking the tree through afero. "auto" prefers rsync when it
// is on PATH.
package snapshot
