package store

import "github.com/evan-idocoding/tweaks/value"

// Typed returns the effective value of t converted to T.
//
// When the effective value does not convert, the default value is tried, then fallback is
// returned. A nil tweak yields fallback.
func Typed[T any](t *Tweak, fallback T) T {
	if t == nil {
		return fallback
	}
	if out, err := value.Coerce[T](t.EffectiveValue()); err == nil {
		return out
	}
	if out, err := value.Coerce[T](t.DefaultValue()); err == nil {
		return out
	}
	return fallback
}

// MappedValue returns the value a Mapping-constrained tweak maps its effective key to,
// converted to T.
//
// When the effective key does not map to a convertible value the default key is tried,
// then fallback is returned. Tweaks without a Mapping yield fallback.
func MappedValue[T any](t *Tweak, fallback T) T {
	if t == nil {
		return fallback
	}
	m, ok := t.PossibleValues().(value.Mapping)
	if !ok {
		return fallback
	}
	for _, k := range []value.Value{t.EffectiveValue(), t.DefaultValue()} {
		key, ok := k.AsString()
		if !ok {
			continue
		}
		v, ok := m.Lookup(key)
		if !ok {
			continue
		}
		if out, err := value.Coerce[T](v); err == nil {
			return out
		}
	}
	return fallback
}
