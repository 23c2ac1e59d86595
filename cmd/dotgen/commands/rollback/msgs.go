package rollback

const (
	MsgShort = "Restore or discard a recorded generation"
	MsgLong  = `Without a subcommand, rollback asks whether to roll back or delete and then
which generation, newest first.

Rolling back disables every managed link, hard-resets the repository to the
generation's commit, removes untracked files (the generation store is kept)
and enables the links again. Local changes in the installation are lost.

Deleting archives the generation so it is no longer offered and removes its
backup directory unless --keep-backup is given.`

	MsgListShort   = "List recorded generations"
	MsgToShort     = "Roll back to a generation"
	MsgDeleteShort = "Archive a generation and remove its backup"

	MsgExample = `  dotgen rollback                    # interactive
  dotgen rollback list --format json
  dotgen rollback to 3
  dotgen rollback delete 1 --keep-backup`

	MsgFlagAll        = "Include archived generations"
	MsgFlagKeepBackup = "Keep the backup directory"
	MsgErrBadID       = "generation id must be a positive integer, got %q"
)
