package model

import "errors"

// Error kinds shared by the wardrobe engine. All are recoverable at the
// caller boundary.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientItems = errors.New("insufficient items")
	ErrAlreadyScheduled  = errors.New("date already scheduled")
	ErrCascadeFailure    = errors.New("laundry cascade failed")
	ErrInvalidStatus     = errors.New("invalid laundry status")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
)
