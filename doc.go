// Package tweaks provides named, typed, editable values that can be changed while a program
// runs, for tuning behavior without a rebuild.
//
// Tweaks live in a tree: a store holds categories, a category holds collections and a
// collection holds tweaks. Each tweak has a stable identifier derived from its three names,
// a default value, an optional current value that overrides it, optional possible values
// (a numeric range, a set of choices or a key mapping) and observers.
//
// The main entry points are:
//   - Inline: register a tweak at its point of use, or resolve the one already registered.
//   - Value: read the current value of an inline tweak as the caller's type.
//   - Bind: keep a field of an object in sync with a tweak while the object lives.
//   - Action / Perform: register and run an action tweak.
//
// Lower-level building blocks live in subpackages:
//   - value: the value variant, constraints, coercion and the persistent encoding.
//   - store: Tweak, Collection, Category and Store, with observers and persistence.
//   - store/blob: the key-value blob stores (in-memory, YAML file).
//   - scan: the declaration table and the scanner that materializes it.
//   - manifest: declarations read from HCL files.
//   - bind: weak bindings of object fields to tweaks.
//   - tweakslog: a slog.LevelVar driven by a tweak.
//   - ops: net/http handlers for operators.
//
// # Quick start
//
//	timeout := tweaks.Value("Network", "Timeouts", "Connect Timeout", 5.0, tweaks.Range(1.0, 30.0))
//
// returns 5.0 until an operator sets another value. Setting 12.5 takes effect on the next
// call; setting 45 is rejected with store.ErrOutOfRange and the value stays 12.5.
//
// # Persistence
//
// Current values are persisted when the store has a blob store:
//
//	f, err := blob.OpenFile("tweaks.yaml")
//	if err != nil {
//		return err
//	}
//	_ = tweaks.Store().SetBlobStore(f)
//
// # Compiling out
//
// Built with -tags tweaks_disabled, every entry point returns its literal default, Inline
// and Action return nil, and the store is never touched.
package tweaks
