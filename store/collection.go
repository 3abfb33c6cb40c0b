package store

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Collection is a named, ordered set of tweaks. It owns its tweaks.
type Collection struct {
	name string

	mu     sync.RWMutex
	tweaks []*Tweak
	byID   map[string]*Tweak

	parent atomic.Pointer[Category]
}

// NewCollection creates an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{name: name, byID: make(map[string]*Tweak)}
}

func (c *Collection) Name() string { return c.name }

// Category returns the owning category, or nil when detached.
func (c *Collection) Category() *Category { return c.parent.Load() }

// Tweaks returns the tweaks in insertion order.
func (c *Collection) Tweaks() []*Tweak {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Tweak(nil), c.tweaks...)
}

// TweakWithIdentifier finds a tweak of this collection by identifier.
func (c *Collection) TweakWithIdentifier(id string) *Tweak {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// AddTweak appends t to the collection.
//
// It fails with ErrDuplicateIdentifier if the identifier is already used in this
// collection (or in the store the collection belongs to), and with ErrInvalidOperation if
// t is owned by another collection. When the collection belongs to a store, the persisted
// value of t is loaded.
func (c *Collection) AddTweak(t *Tweak) error {
	if t == nil {
		return fmt.Errorf("%w: nil tweak", ErrInvalidOperation)
	}
	s := c.store()
	if s != nil && s.TweakWithIdentifier(t.id) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, t.id)
	}

	c.mu.Lock()
	if _, ok := c.byID[t.id]; ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, t.id)
	}
	if !t.parent.CompareAndSwap(nil, c) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q already belongs to a collection", ErrInvalidOperation, t.id)
	}
	if c.byID == nil {
		c.byID = make(map[string]*Tweak)
	}
	c.tweaks = append(c.tweaks, t)
	c.byID[t.id] = t
	c.mu.Unlock()

	if s != nil {
		s.attach(t)
	}
	return nil
}

// RemoveTweak detaches t from the collection without notifying its observers.
// It reports whether t was part of the collection.
func (c *Collection) RemoveTweak(t *Tweak) bool {
	if t == nil {
		return false
	}
	c.mu.Lock()
	if c.byID[t.id] != t {
		c.mu.Unlock()
		return false
	}
	delete(c.byID, t.id)
	for i, it := range c.tweaks {
		if it == t {
			c.tweaks = append(c.tweaks[:i:i], c.tweaks[i+1:]...)
			break
		}
	}
	t.parent.Store(nil)
	c.mu.Unlock()

	if s := c.store(); s != nil {
		s.detach(t)
	}
	return true
}

func (c *Collection) store() *Store {
	cat := c.parent.Load()
	if cat == nil {
		return nil
	}
	return cat.parent.Load()
}
