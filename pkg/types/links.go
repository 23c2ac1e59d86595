package types

// LinkState is the derived deployment state of a managed item. It is always
// recomputed from the filesystem and never stored.
type LinkState string

const (
	// LinkDisabled means nothing exists at the target path.
	LinkDisabled LinkState = "disabled"

	// LinkEnabled means the target is a symlink to the repository's copy.
	LinkEnabled LinkState = "enabled"

	// LinkEnabledExternal means the target is a symlink pointing elsewhere.
	LinkEnabledExternal LinkState = "enabled-external"

	// LinkUnmanaged means the target exists and is not a symlink.
	LinkUnmanaged LinkState = "unmanaged"

	// LinkSourceMissing means the repository has no copy of the item.
	LinkSourceMissing LinkState = "source-missing"
)

// ItemGroup tells whether an item is always managed or only on full installs.
type ItemGroup string

const (
	GroupMinimal ItemGroup = "minimal"
	GroupExtra   ItemGroup = "extra"
)

// ManagedItem pairs a configuration directory inside the repository with its
// deployment location.
type ManagedItem struct {
	Name   string
	Group  ItemGroup
	Source string
	Target string
}

// ItemStatus is a managed item together with its state at probe time.
type ItemStatus struct {
	Item  ManagedItem
	State LinkState

	// LinkTarget is the raw symlink destination when the target is a link.
	LinkTarget string
}
