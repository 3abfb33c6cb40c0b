package bind

import (
	"fmt"
	"runtime"
	"sync"
	"weak"

	"github.com/evan-idocoding/tweaks/store"
)

// Binding keeps a field of a target in sync with a tweak.
type Binding struct {
	tweak *store.Tweak
	token store.Token

	once    sync.Once
	cleanup runtime.Cleanup
}

// Bind calls set with the typed value of tw right away and again after every change.
//
// The binding holds target weakly: once target is garbage collected the observer is removed
// from tw, so the tweak never extends the lifetime of the object. Unbind detaches earlier.
// set receives the zero T when neither the current nor the default value converts to T.
//
// A nil tweak, target or setter and an action tweak fail with store.ErrInvalidOperation.
func Bind[O, T any](tw *store.Tweak, target *O, set func(*O, T)) (*Binding, error) {
	var zero T
	return BindFallback(tw, target, set, zero)
}

// BindFallback is like Bind but passes fallback to set when the tweak value does not
// convert to T.
func BindFallback[O, T any](tw *store.Tweak, target *O, set func(*O, T), fallback T) (*Binding, error) {
	switch {
	case tw == nil:
		return nil, fmt.Errorf("%w: bind: nil tweak", store.ErrInvalidOperation)
	case target == nil:
		return nil, fmt.Errorf("%w: bind %q: nil target", store.ErrInvalidOperation, tw.Identifier())
	case set == nil:
		return nil, fmt.Errorf("%w: bind %q: nil setter", store.ErrInvalidOperation, tw.Identifier())
	case tw.IsAction():
		return nil, fmt.Errorf("%w: bind %q: action tweak", store.ErrInvalidOperation, tw.Identifier())
	}

	set(target, store.Typed(tw, fallback))

	wp := weak.Make(target)
	b := &Binding{tweak: tw}
	b.token = tw.AddObserver(store.ObserverFunc(func(t *store.Tweak) {
		if o := wp.Value(); o != nil {
			set(o, store.Typed(t, fallback))
		}
	}))
	b.cleanup = runtime.AddCleanup(target, func(b *Binding) { b.release() }, b)
	return b, nil
}

// Tweak returns the bound tweak.
func (b *Binding) Tweak() *store.Tweak { return b.tweak }

// Unbind stops updating the target. It is safe to call more than once.
func (b *Binding) Unbind() {
	if b == nil {
		return
	}
	b.cleanup.Stop()
	b.release()
}

func (b *Binding) release() {
	b.once.Do(func() { b.tweak.RemoveObserver(b.token) })
}
