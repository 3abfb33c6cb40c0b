package store

import "errors"

var (
	// ErrOutOfRange indicates a value that does not satisfy a tweak's possible values.
	ErrOutOfRange = errors.New("store: value out of range")
	// ErrInvalidOperation indicates a mutation that is never allowed, such as setting the
	// current value of an action tweak.
	ErrInvalidOperation = errors.New("store: invalid operation")
	// ErrDuplicateIdentifier indicates a name or identifier that is already registered.
	ErrDuplicateIdentifier = errors.New("store: duplicate identifier")
	// ErrInvalidConfig indicates a construction-time configuration error.
	ErrInvalidConfig = errors.New("store: invalid config")
	// ErrNotFound indicates the identifier is not registered.
	ErrNotFound = errors.New("store: not found")
)
