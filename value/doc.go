// Package value is the type-preserving value model behind tweaks.
//
// A Value is a closed variant over none, bool, int, uint, float, string, action (a
// parameterless func), array and dict. The store keeps every tweak as a Value; call sites
// get their declared Go type back through Coerce:
//
//	v := value.Float(12.5)
//	secs, _ := value.Coerce[float64](v) // 12.5
//	n, _ := value.Coerce[int](v)        // 12
//	s, _ := value.Coerce[string](v)     // "12.5"
//
// # Ordering
//
// Compare orders numeric values across int, uint and float, and strings lexicographically.
// Other pairs fail with ErrTypeMismatch.
//
// # Constraints
//
// NumericRange, Choices and Mapping implement Constraint and describe the possible values
// of a tweak.
//
// # Persistence
//
// Marshal/Unmarshal encode every variant except action as a tagged YAML envelope (Wire).
package value
