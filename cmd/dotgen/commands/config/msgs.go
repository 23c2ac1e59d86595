package config

const (
	MsgShort = "Show or change the link state of managed items"
	MsgLong  = `Each managed item is a directory under the repository's config directory
that is deployed as a symlink into the config home.

States:
  enabled           linked to the repository
  enabled-external  a symlink pointing somewhere else
  unmanaged         a real file or directory is in the way
  disabled          nothing deployed
  source-missing    the repository has no copy

Enabling over an unmanaged or external target asks first.`

	MsgListShort    = "List managed items and their state"
	MsgEnableShort  = "Link an item into the config home"
	MsgDisableShort = "Remove an item's link"
)
