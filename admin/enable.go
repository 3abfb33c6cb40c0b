package admin

import (
	"github.com/evan-idocoding/tweaks/ops"
	"github.com/evan-idocoding/tweaks/store"
)

// TweaksAccessSpec filters which tweaks an endpoint exposes. All configured filters must
// allow an identifier.
type TweaksAccessSpec struct {
	AllowCategories  []string
	AllowIdentifiers []string
	AllowFunc        func(id string) bool
}

func (a TweaksAccessSpec) empty() bool {
	return a.AllowCategories == nil && a.AllowIdentifiers == nil && a.AllowFunc == nil
}

func (a TweaksAccessSpec) options() []ops.Option {
	var opts []ops.Option
	if a.AllowCategories != nil {
		opts = append(opts, ops.WithAllowCategories(a.AllowCategories...))
	}
	if a.AllowIdentifiers != nil {
		opts = append(opts, ops.WithAllowIdentifiers(a.AllowIdentifiers...))
	}
	if a.AllowFunc != nil {
		opts = append(opts, ops.WithGuard(a.AllowFunc))
	}
	return opts
}

// writeOptions denies everything when no access filter is given (fail-closed).
func (a TweaksAccessSpec) writeOptions() []ops.Option {
	if a.empty() {
		return []ops.Option{ops.WithGuard(func(string) bool { return false })}
	}
	return a.options()
}

// TweaksReadSpec configures a read endpoint. Empty Access means no filtering.
type TweaksReadSpec struct {
	Guard  Guard
	Path   string
	S      *store.Store
	Access TweaksAccessSpec
}

// TweaksWriteSpec configures a write endpoint. Empty Access denies all writes.
type TweaksWriteSpec struct {
	Guard  Guard
	Path   string
	S      *store.Store
	Access TweaksAccessSpec
}

func requireStore(s *store.Store, name string) {
	if s == nil {
		panic("admin: " + name + ": nil store.Store")
	}
}

// EnableTweaksSnapshot mounts ops.SnapshotHandler. Default path "/tweaks".
func EnableTweaksSnapshot(spec TweaksReadSpec) Option {
	return func(b *Builder) {
		requireStore(spec.S, "tweaks.snapshot")
		path := resolvePath(spec.Path, "/tweaks")
		mount(b, "tweaks.snapshot", path, spec.Guard, ops.SnapshotHandler(spec.S, spec.Access.options()...))
	}
}

// EnableTweaksLookup mounts ops.LookupHandler. Default path "/tweaks/lookup".
func EnableTweaksLookup(spec TweaksReadSpec) Option {
	return func(b *Builder) {
		requireStore(spec.S, "tweaks.lookup")
		path := resolvePath(spec.Path, "/tweaks/lookup")
		mount(b, "tweaks.lookup", path, spec.Guard, ops.LookupHandler(spec.S, spec.Access.options()...))
	}
}

// EnableTweaksSet mounts ops.SetHandler. Default path "/tweaks/set".
func EnableTweaksSet(spec TweaksWriteSpec) Option {
	return func(b *Builder) {
		requireStore(spec.S, "tweaks.set")
		path := resolvePath(spec.Path, "/tweaks/set")
		mount(b, "tweaks.set", path, spec.Guard, ops.SetHandler(spec.S, spec.Access.writeOptions()...))
	}
}

// EnableTweaksReset mounts ops.ResetHandler. Default path "/tweaks/reset".
func EnableTweaksReset(spec TweaksWriteSpec) Option {
	return func(b *Builder) {
		requireStore(spec.S, "tweaks.reset")
		path := resolvePath(spec.Path, "/tweaks/reset")
		mount(b, "tweaks.reset", path, spec.Guard, ops.ResetHandler(spec.S, spec.Access.writeOptions()...))
	}
}

// EnableTweaksPerform mounts ops.PerformHandler. Default path "/tweaks/perform".
func EnableTweaksPerform(spec TweaksWriteSpec) Option {
	return func(b *Builder) {
		requireStore(spec.S, "tweaks.perform")
		path := resolvePath(spec.Path, "/tweaks/perform")
		mount(b, "tweaks.perform", path, spec.Guard, ops.PerformHandler(spec.S, spec.Access.writeOptions()...))
	}
}
