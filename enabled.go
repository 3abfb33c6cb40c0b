//go:build !tweaks_disabled

package tweaks

import (
	"fmt"

	"github.com/evan-idocoding/tweaks/bind"
	"github.com/evan-idocoding/tweaks/scan"
	"github.com/evan-idocoding/tweaks/store"
)

// Enabled reports whether tweaks are compiled in. Build with -tags tweaks_disabled to
// compile every entry point down to its literal default.
const Enabled = true

// Inline returns the tweak declared at category/collection/name, registering it with def as
// its default on first use. Later calls with the same identifier return the same tweak.
//
// It returns nil when def (or a bound) is not a supported value; the failure is logged.
func Inline(category, collection, name string, def any, opts ...Option) *store.Tweak {
	return inline(scan.Default(), category, collection, name, def, opts...)
}

// Value returns the current value of an inline tweak as T, or def when the tweak cannot be
// registered or its value does not convert.
func Value[T any](category, collection, name string, def T, opts ...Option) T {
	return Typed(Inline(category, collection, name, def, opts...), def)
}

// MappedValue registers a string tweak whose possible values are the keys of m, with
// defaultKey as its default, and returns the value mapped to its current key. keys gives
// the display order of the keys; when omitted they are sorted.
//
// m[defaultKey] is returned when the tweak cannot be registered.
func MappedValue[T any](category, collection, name string, m map[string]T, defaultKey string, keys ...string) T {
	fields := make(map[string]any, len(m))
	for k, v := range m {
		fields[k] = v
	}
	tw := Inline(category, collection, name, defaultKey, Mapping(fields, keys...))
	return store.MappedValue(tw, m[defaultKey])
}

// Typed returns the effective value of tw as T. When it does not convert the tweak default
// is tried, then def is returned.
func Typed[T any](tw *store.Tweak, def T) T {
	return store.Typed(tw, def)
}

// Bind registers an inline tweak and keeps a field of target in sync with it for as long as
// target lives. When the tweak cannot be registered set is called once with def and nil is
// returned.
func Bind[O, T any](target *O, set func(*O, T), category, collection, name string, def T, opts ...Option) *bind.Binding {
	tw := Inline(category, collection, name, def, opts...)
	b, err := bind.BindFallback(tw, target, set, def)
	if err != nil {
		if target != nil && set != nil {
			set(target, def)
		}
		return nil
	}
	return b
}

// Action registers an action tweak that runs fn when performed.
func Action(category, collection, name string, fn func()) *store.Tweak {
	if fn == nil {
		return nil
	}
	sc := scan.Default()
	sc.Scan()
	tw, _ := sc.Materialize(scan.Record{
		Category:   category,
		Collection: collection,
		Name:       name,
		Value:      fn,
		Signature:  scan.SigAction,
	})
	return tw
}

// Perform runs the action of tw. A nil or non-action tweak fails with
// store.ErrInvalidOperation.
func Perform(tw *store.Tweak) error {
	if tw == nil {
		return fmt.Errorf("%w: perform: nil tweak", store.ErrInvalidOperation)
	}
	return tw.Perform()
}

// Store returns the process-wide store inline tweaks are registered in.
func Store() *store.Store {
	return scan.Default().Store()
}

func inline(sc *scan.Scanner, category, collection, name string, def any, opts ...Option) *store.Tweak {
	sc.Scan()
	tw, _ := sc.Materialize(scan.Record{
		Category:   category,
		Collection: collection,
		Name:       name,
		Value:      def,
		Bounds:     boundsOf(opts),
		Signature:  scan.SignatureOf(def),
	})
	return tw
}
