package value

import "errors"

var (
	// ErrTypeMismatch indicates two values (or a value and a target type) have incompatible variants.
	ErrTypeMismatch = errors.New("value: type mismatch")
	// ErrInvalidRange indicates a NumericRange with non-numeric bounds or min > max.
	ErrInvalidRange = errors.New("value: invalid range")
	// ErrNotPersistable indicates an attempt to encode an action.
	ErrNotPersistable = errors.New("value: not persistable")
	// ErrInvalidEncoding indicates persisted bytes that do not decode to a Value.
	ErrInvalidEncoding = errors.New("value: invalid encoding")
)
