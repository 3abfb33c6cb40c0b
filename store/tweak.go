package store

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/evan-idocoding/tweaks/value"
)

type tweakConfig struct {
	name     string
	def      value.Value
	possible value.Constraint

	min, max        value.Value
	step, precision value.Value
}

// TweakOption configures a Tweak at construction time.
type TweakOption func(*tweakConfig)

// WithName sets the display name. It defaults to the identifier.
func WithName(name string) TweakOption {
	return func(c *tweakConfig) { c.name = name }
}

// WithDefault sets the default value.
func WithDefault(v value.Value) TweakOption {
	return func(c *tweakConfig) { c.def = v }
}

// WithPossibleValues constrains the current value (NumericRange, Choices or Mapping).
func WithPossibleValues(pv value.Constraint) TweakOption {
	return func(c *tweakConfig) { c.possible = pv }
}

// WithMinimum overrides the editing minimum derived from possible values.
func WithMinimum(v value.Value) TweakOption {
	return func(c *tweakConfig) { c.min = v }
}

// WithMaximum overrides the editing maximum derived from possible values.
func WithMaximum(v value.Value) TweakOption {
	return func(c *tweakConfig) { c.max = v }
}

// WithStep sets the editing step. When unset it is derived from the range.
func WithStep(v value.Value) TweakOption {
	return func(c *tweakConfig) { c.step = v }
}

// WithPrecision sets the number of decimals shown for float tweaks.
func WithPrecision(v value.Value) TweakOption {
	return func(c *tweakConfig) { c.precision = v }
}

// Tweak is a single named, typed, editable value with a default and optional constraints.
//
// A Tweak is safe for concurrent use. Observers are notified synchronously on the
// goroutine that changes the value, outside of any lock.
type Tweak struct {
	id       string
	name     string
	action   bool
	def      value.Value
	possible value.Constraint

	min, max        value.Value
	step, precision value.Value

	mu        sync.RWMutex
	cur       value.Value
	nextToken Token
	observers []observerEntry

	parent atomic.Pointer[Collection]
}

// NewTweak creates a value tweak.
//
// The default value must not be an action (use NewAction) and must satisfy the possible
// values, if any.
func NewTweak(identifier string, opts ...TweakOption) (*Tweak, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidConfig)
	}
	var cfg tweakConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.def.Kind() == value.KindAction {
		return nil, fmt.Errorf("%w: %q default is an action", ErrInvalidConfig, identifier)
	}
	if cfg.possible != nil && !cfg.def.IsNone() && !cfg.possible.Contains(cfg.def) {
		return nil, fmt.Errorf("%w: %q default %v not in %v", ErrOutOfRange, identifier, cfg.def, cfg.possible)
	}
	if cfg.name == "" {
		cfg.name = identifier
	}
	return &Tweak{
		id:        identifier,
		name:      cfg.name,
		def:       cfg.def,
		possible:  cfg.possible,
		min:       cfg.min,
		max:       cfg.max,
		step:      cfg.step,
		precision: cfg.precision,
	}, nil
}

// NewAction creates an action tweak whose default value is fn.
func NewAction(identifier, name string, fn func()) (*Tweak, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidConfig)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q nil action", ErrInvalidConfig, identifier)
	}
	if name == "" {
		name = identifier
	}
	return &Tweak{id: identifier, name: name, action: true, def: value.Action(fn)}, nil
}

func (t *Tweak) Identifier() string { return t.id }
func (t *Tweak) Name() string       { return t.name }
func (t *Tweak) IsAction() bool     { return t.action }

// DefaultValue returns the default value. For actions it holds the action.
func (t *Tweak) DefaultValue() value.Value { return t.def }

// PossibleValues returns the constraint on the current value, or nil.
func (t *Tweak) PossibleValues() value.Constraint { return t.possible }

// Collection returns the owning collection, or nil when detached.
func (t *Tweak) Collection() *Collection { return t.parent.Load() }

// CurrentValue returns the override, or none when the default is in effect.
func (t *Tweak) CurrentValue() value.Value {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cur
}

// EffectiveValue returns the current value if set, the default value otherwise.
func (t *Tweak) EffectiveValue() value.Value {
	if cur := t.CurrentValue(); !cur.IsNone() {
		return cur
	}
	return t.def
}

// SetCurrentValue overrides the value of the tweak and persists it.
//
// It fails with ErrInvalidOperation on action tweaks and with ErrOutOfRange when v does not
// satisfy the possible values; in both cases nothing changes. Setting none clears the
// override. Observers are notified even if v equals the current value.
func (t *Tweak) SetCurrentValue(v value.Value) error {
	if t.action {
		return fmt.Errorf("%w: %q is an action", ErrInvalidOperation, t.id)
	}
	if v.Kind() == value.KindAction {
		return fmt.Errorf("%w: %q cannot hold an action", ErrInvalidOperation, t.id)
	}
	if !v.IsNone() && t.possible != nil && !t.possible.Contains(v) {
		return fmt.Errorf("%w: %q value %v not in %v", ErrOutOfRange, t.id, v, t.possible)
	}
	t.assign(v, true)
	return nil
}

// Reset clears the override so that the default value is in effect.
func (t *Tweak) Reset() error { return t.SetCurrentValue(value.None()) }

// Perform runs the action of an action tweak.
func (t *Tweak) Perform() error {
	fn, ok := t.def.AsAction()
	if !t.action || !ok {
		return fmt.Errorf("%w: %q is not an action", ErrInvalidOperation, t.id)
	}
	fn()
	return nil
}

// MinimumValue returns the editing minimum: the explicit one, else the range minimum, else none.
func (t *Tweak) MinimumValue() value.Value {
	if !t.min.IsNone() {
		return t.min
	}
	if r, ok := t.possible.(value.NumericRange); ok {
		return r.Min()
	}
	return value.None()
}

// MaximumValue returns the editing maximum: the explicit one, else the range maximum, else none.
func (t *Tweak) MaximumValue() value.Value {
	if !t.max.IsNone() {
		return t.max
	}
	if r, ok := t.possible.(value.NumericRange); ok {
		return r.Max()
	}
	return value.None()
}

// StepValue returns the editing step.
//
// Unless set explicitly: 1 for int and uint tweaks; for float tweaks a hundredth of the
// range capped at 1, or 1 when unbounded; none for everything else.
func (t *Tweak) StepValue() value.Value {
	if !t.step.IsNone() {
		return t.step
	}
	switch t.def.Kind() {
	case value.KindInt:
		return value.Int(1)
	case value.KindUint:
		return value.Uint(1)
	case value.KindFloat:
		lo, okLo := t.MinimumValue().Float64()
		hi, okHi := t.MaximumValue().Float64()
		if okLo && okHi && hi > lo {
			return value.Float(math.Min(1, (hi-lo)/100))
		}
		return value.Float(1)
	}
	return value.None()
}

// PrecisionValue returns the number of decimals used to display the value.
//
// Unless set explicitly: 0 for int and uint tweaks; for float tweaks the decimals needed to
// show one step, at least 1; none for everything else.
func (t *Tweak) PrecisionValue() value.Value {
	if !t.precision.IsNone() {
		return t.precision
	}
	switch t.def.Kind() {
	case value.KindInt, value.KindUint:
		return value.Int(0)
	case value.KindFloat:
		step, _ := t.StepValue().Float64()
		p := int64(1)
		if step > 0 {
			if need := int64(math.Ceil(-math.Log10(step))); need > p {
				p = need
			}
		}
		return value.Int(p)
	}
	return value.None()
}

// assign stores v, persists it through the owning store and notifies observers.
func (t *Tweak) assign(v value.Value, persist bool) {
	obs := t.observerSnapshot()
	for _, o := range obs {
		if w, ok := o.(WillChangeObserver); ok {
			safeNotify(w.TweakWillChange, t)
		}
	}

	t.mu.Lock()
	t.cur = v
	t.mu.Unlock()

	if persist {
		if s := t.store(); s != nil {
			s.persist(t, v)
		}
	}
	for _, o := range obs {
		safeNotify(o.TweakDidChange, t)
	}
}

// load sets the current value without persisting or notifying.
func (t *Tweak) load(v value.Value) {
	t.mu.Lock()
	t.cur = v
	t.mu.Unlock()
}

// accepts reports whether a persisted value may become the current value.
func (t *Tweak) accepts(v value.Value) bool {
	if t.action || v.Kind() == value.KindAction {
		return false
	}
	return v.IsNone() || t.possible == nil || t.possible.Contains(v)
}

func (t *Tweak) store() *Store {
	c := t.parent.Load()
	if c == nil {
		return nil
	}
	return c.store()
}
