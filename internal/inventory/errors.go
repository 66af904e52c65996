package inventory

import "errors"

// Sentinel errors returned by store operations. All of them are
// per-call failures: the in-memory state and the persisted document are
// left untouched when one is returned.
var (
	// ErrNotFound is returned when an operation references an unknown item id.
	ErrNotFound = errors.New("item not found")

	// ErrNameRequired is returned when an item is created without a name.
	ErrNameRequired = errors.New("item name is required")

	// ErrFetchFailed is returned when a photo could not be fetched from a URL.
	ErrFetchFailed = errors.New("photo fetch failed")
)
