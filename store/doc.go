// Package store holds tweaks in a four-level ownership tree:
// Store → Category → Collection → Tweak.
//
// Categories are unique by name within a store, collections by name within a category,
// and tweaks by identifier (see Identifier) within the whole store. Every level keeps
// insertion order and offers O(1) lookup.
//
// # Values
//
// A Tweak has a default value and an optional current value (the override). The effective
// value is the current value when set, the default otherwise. SetCurrentValue rejects
// values outside the possible values with ErrOutOfRange (values are never clamped) and
// rejects any write to an action tweak with ErrInvalidOperation.
//
// # Observers
//
// Observers registered with AddObserver receive TweakDidChange after every successful
// write, and TweakWillChange before it when they implement WillChangeObserver. They run
// synchronously, in registration order, outside of any lock; panics are swallowed.
// Structural removal (Remove*) never notifies.
//
// # Persistence
//
// A Store created WithBlobStore writes every override under the tweak identifier and
// deletes the key when the override is cleared. A tweak that becomes reachable from the
// store picks up its persisted value. Persistence failures are logged, never fatal: the
// in-memory value stays authoritative.
//
// # Quick start
//
//	s := store.New(store.WithBlobStore(blob.NewMemory()))
//	cat := store.NewCategory("Network")
//	col := store.NewCollection("Timeouts")
//	_ = s.AddTweakCategory(cat)
//	_ = cat.AddTweakCollection(col)
//
//	r, _ := value.NewRange(value.Float(1), value.Float(30))
//	t, _ := store.NewTweak(store.Identifier("Network", "Timeouts", "Connect Timeout"),
//		store.WithName("Connect Timeout"),
//		store.WithDefault(value.Float(5)),
//		store.WithPossibleValues(r))
//	_ = col.AddTweak(t)
//
//	_ = t.SetCurrentValue(value.Float(12.5)) // ok
//	_ = t.SetCurrentValue(value.Float(45))   // ErrOutOfRange, still 12.5
package store
