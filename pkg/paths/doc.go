// Package paths provides centralized path handling for dotgen.
//
// Every location the tool touches is derived here from the loaded
// configuration:
//
//   - the install dir (the cloned repository, default $XDG_CACHE_HOME/dotgen)
//   - the item sources under <install>/<config_subdir>/<name>
//   - the deploy dir the items are linked into (default $XDG_CONFIG_HOME)
//   - the generation store <install>/<generations.subdir>, holding the
//     ledger document and one backup directory per generation id
//   - the staging dir used while an update is in flight
//
// Empty settings fall back to the XDG base directories and a leading ~ is
// expanded. All returned paths are absolute.
package paths
