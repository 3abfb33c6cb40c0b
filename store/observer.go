package store

// Observer is notified after a tweak's value changes.
type Observer interface {
	TweakDidChange(t *Tweak)
}

// WillChangeObserver is optionally implemented by observers that want to be notified
// before a tweak's value changes.
type WillChangeObserver interface {
	TweakWillChange(t *Tweak)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t *Tweak)

func (f ObserverFunc) TweakDidChange(t *Tweak) { f(t) }

// Token identifies an observer registration on a tweak. The zero Token is never issued.
type Token uint64

type observerEntry struct {
	token Token
	o     Observer
}

// AddObserver registers o and returns the token that removes it.
//
// Observers are called in registration order. Panics in observers are recovered and
// swallowed; an observer that cares about its own panics must recover them itself.
func (t *Tweak) AddObserver(o Observer) Token {
	if o == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextToken++
	tok := t.nextToken
	t.observers = append(t.observers, observerEntry{token: tok, o: o})
	return tok
}

// RemoveObserver unregisters the observer behind tok. It reports whether it was registered.
func (t *Tweak) RemoveObserver(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.observers {
		if e.token == tok {
			t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
			return true
		}
	}
	return false
}

// ObserverCount returns the number of registered observers.
func (t *Tweak) ObserverCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.observers)
}

func (t *Tweak) observerSnapshot() []Observer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(t.observers))
	for i, e := range t.observers {
		out[i] = e.o
	}
	return out
}

func safeNotify(fn func(*Tweak), t *Tweak) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(t)
}
