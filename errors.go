package stockroom

import (
	"errors"
	"fmt"
)

var (
	// ErrBlankName is returned when creating an item with an empty or whitespace-only name.
	ErrBlankName = errors.New("item name is blank")
	// ErrDuplicate is returned when creating an item whose name is already used.
	ErrDuplicate = errors.New("item already exists")
	// ErrNotFound is returned when an operation names an item that does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrNoSelection is returned when an operation needs an item but none was given.
	ErrNoSelection = errors.New("no item selected")
)

// ValidationError reports a user-supplied value that could not be accepted.
type ValidationError struct {
	Field string // "quantity", "price" or "low_threshold"
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
