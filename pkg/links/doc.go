// Package links deploys managed configuration items as symlinks.
//
// Each item is a directory <install>/<config_subdir>/<name> linked to
// <deploy_dir>/<name>. The state of an item is probed live from the
// filesystem on every call:
//
//	source-missing   the repository has no copy of the item (checked first)
//	disabled         nothing exists at the target
//	enabled          the target is a symlink resolving to the source
//	enabled-external the target is a symlink resolving elsewhere
//	unmanaged        the target exists and is not a symlink
//
// Only links the reconciler recognises as its own are ever removed without
// asking. Replacing anything else requires a confirmation; a declined
// confirmation is a LINK_CONFLICT and the target is left untouched.
package links
