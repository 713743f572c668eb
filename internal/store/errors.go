package store

import "errors"

// Error variables for store operations.
var (
	ErrNotFound    = errors.New("item not found")
	ErrPathEmpty   = errors.New("store path is empty")
	ErrLocked      = errors.New("store is locked by another process")
	ErrDuplicateID = errors.New("duplicate item id")
	ErrMissingID   = errors.New("row is missing an id")
)
