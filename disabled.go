//go:build tweaks_disabled

package tweaks

import (
	"github.com/evan-idocoding/tweaks/bind"
	"github.com/evan-idocoding/tweaks/store"
)

// Enabled reports whether tweaks are compiled in.
const Enabled = false

// Inline returns nil: tweaks are compiled out.
func Inline(category, collection, name string, def any, opts ...Option) *store.Tweak {
	return nil
}

// Value returns def.
func Value[T any](category, collection, name string, def T, opts ...Option) T {
	return def
}

// MappedValue returns m[defaultKey].
func MappedValue[T any](category, collection, name string, m map[string]T, defaultKey string, keys ...string) T {
	return m[defaultKey]
}

// Typed returns def.
func Typed[T any](tw *store.Tweak, def T) T {
	return def
}

// Bind calls set once with def and returns nil.
func Bind[O, T any](target *O, set func(*O, T), category, collection, name string, def T, opts ...Option) *bind.Binding {
	if target != nil && set != nil {
		set(target, def)
	}
	return nil
}

// Action returns nil; fn is never registered.
func Action(category, collection, name string, fn func()) *store.Tweak {
	return nil
}

// Perform does nothing.
func Perform(tw *store.Tweak) error {
	return nil
}

// Store returns nil.
func Store() *store.Store {
	return nil
}
