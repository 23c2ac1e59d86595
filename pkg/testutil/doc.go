// Package testutil provides utilities for testing dotgen components.
//
// Key components:
//   - GitRepo: real git repositories built with go-git, so tests need no git
//     binary (init, commit, tag, clone)
//   - TestEnvironment: an isolated install (cloned repository with managed
//     item sources), deploy dir and staging dir, with config and paths wired
//   - StubClock: fixed, advanceable time source
//
// Every helper works inside t.TempDir() and registers its own cleanup.
package testutil
