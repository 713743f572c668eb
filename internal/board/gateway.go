package board

import "context"

// Gateway is the narrow interface the engine uses to persist a computed
// order-key change. The backend behind it owns final renumbering
// consistency: after a regular-slot write the written item takes the rank
// its key names among the group's other regular slots, and the regular
// sequence repacks to a tight 1..N. Any urgent prefix and all null-key
// items stay untouched.
type Gateway interface {
	// SetOrderKey persists key for the item, or clears the field when key
	// is null. Implementations reject zero and negative values with
	// ValidationError before touching the store.
	SetOrderKey(ctx context.Context, itemID string, key OrderKey) error
}

// Fetcher reads the current item collection from the external source.
type Fetcher interface {
	FetchItems(ctx context.Context) (Snapshot, error)
}

// Store is the combined contract of the external system the board talks to.
type Store interface {
	Gateway
	Fetcher
}
