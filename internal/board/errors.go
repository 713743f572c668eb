package board

import (
	"errors"
	"fmt"
)

// Error variables for board operations.
var (
	ErrItemNotFound   = errors.New("item not found in snapshot")
	ErrGroupMismatch  = errors.New("dragged and target items are in different groups")
	ErrNotReorderable = errors.New("item is not drag-reorderable")
	ErrNoGesture      = errors.New("no drop target selected")
	ErrConfigFileRead = errors.New("cannot read config file")
	ErrConfigInvalid  = errors.New("invalid config file")
	ErrStoreDirEmpty  = errors.New("store_dir cannot be empty")
	ErrUnknownColumn  = errors.New("unknown sort column")
)

// ValidationError reports an order value rejected before any store call.
type ValidationError struct {
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order value %q: %s", e.Value, e.Reason)
}

// PersistenceError wraps a failed mutation against the external store.
// The caller is expected to re-fetch the snapshot so the UI re-syncs to the
// true external state even after a failed write.
type PersistenceError struct {
	ItemID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist order for %s: %v", e.ItemID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
