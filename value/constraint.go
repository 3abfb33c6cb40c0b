package value

import (
	"fmt"
	"strings"
)

// Constraint restricts the values a tweak may hold.
//
// Implementations: NumericRange, Choices and Mapping.
type Constraint interface {
	// Contains reports whether v satisfies the constraint.
	Contains(v Value) bool
	String() string
}

// NumericRange is an inclusive [Min, Max] range over numeric values.
//
// The zero NumericRange contains nothing; use NewRange.
type NumericRange struct {
	min Value
	max Value
}

// NewRange returns the range [min, max]. Both bounds must be numeric and min <= max.
func NewRange(min, max Value) (NumericRange, error) {
	if !min.kind.IsNumeric() || !max.kind.IsNumeric() {
		return NumericRange{}, fmt.Errorf("%w: bounds must be numeric, got %s and %s", ErrInvalidRange, min.kind, max.kind)
	}
	if compareNumeric(min, max) > 0 {
		return NumericRange{}, fmt.Errorf("%w: min(%v) > max(%v)", ErrInvalidRange, min, max)
	}
	return NumericRange{min: min, max: max}, nil
}

func (r NumericRange) Min() Value { return r.min }
func (r NumericRange) Max() Value { return r.max }

func (r NumericRange) Contains(v Value) bool {
	if !v.kind.IsNumeric() || !r.min.kind.IsNumeric() {
		return false
	}
	return compareNumeric(v, r.min) >= 0 && compareNumeric(v, r.max) <= 0
}

func (r NumericRange) String() string {
	return "[" + r.min.String() + ", " + r.max.String() + "]"
}

// Choices is a fixed, ordered set of allowed values.
type Choices []Value

func (c Choices) Contains(v Value) bool {
	for _, it := range c {
		if Equal(it, v) {
			return true
		}
	}
	return false
}

func (c Choices) String() string {
	parts := make([]string, len(c))
	for i, it := range c {
		parts[i] = it.String()
	}
	return "one of [" + strings.Join(parts, ", ") + "]"
}

// Mapping is a fixed dictionary of allowed keys. A tweak constrained by a Mapping holds
// one of the keys as a string; Lookup resolves it to the mapped value.
type Mapping struct {
	keys   []string
	fields map[string]Value
}

// NewMapping builds a Mapping. keys gives the display order; when empty, keys are sorted.
// Keys missing from m are ignored.
func NewMapping(m map[string]Value, keys ...string) Mapping {
	if len(keys) == 0 {
		keys = sortedKeys(m)
	}
	out := Mapping{fields: make(map[string]Value, len(m))}
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if _, dup := out.fields[k]; dup {
			continue
		}
		out.keys = append(out.keys, k)
		out.fields[k] = v
	}
	return out
}

// Keys returns the keys in display order.
func (m Mapping) Keys() []string { return append([]string(nil), m.keys...) }

// Lookup returns the value mapped to key.
func (m Mapping) Lookup(key string) (Value, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Dict returns the mapping as a dictionary value.
func (m Mapping) Dict() Value { return Dict(m.fields) }

func (m Mapping) Contains(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	_, ok = m.fields[s]
	return ok
}

func (m Mapping) String() string {
	return "key of {" + strings.Join(m.keys, ", ") + "}"
}

// EqualConstraints reports whether a and b admit the same values and, for mappings, map
// them to equal values in the same display order. Two nil constraints are equal.
func EqualConstraints(a, b Constraint) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case NumericRange:
		b, ok := b.(NumericRange)
		return ok && Equal(a.min, b.min) && Equal(a.max, b.max)
	case Choices:
		b, ok := b.(Choices)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case Mapping:
		b, ok := b.(Mapping)
		if !ok || len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			if b.keys[i] != k || !Equal(a.fields[k], b.fields[k]) {
				return false
			}
		}
		return true
	}
	return false
}
