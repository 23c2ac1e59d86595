package update

const (
	MsgShort = "Update the dotfiles and redeploy them"
	MsgLong  = `Update snapshots the installation, advances the repository and records the
previous state as a new generation before redeploying every managed item.

  edge    pull the tracked branch (default)
  stable  check out the most recent tag

Nothing is recorded when the repository did not move. Use --force-tag to check
out the latest tag again and --force-record to record a generation anyway;
--force sets both.`
	MsgExample = `  dotgen update             # pull the branch
  dotgen update stable      # move to the latest release tag
  dotgen update --force     # re-apply and record even if unchanged`

	MsgFlagForce       = "Same as --force-tag --force-record"
	MsgFlagForceTag    = "Check out the latest tag even when already on it"
	MsgFlagForceRecord = "Record a generation even when nothing changed"
)
