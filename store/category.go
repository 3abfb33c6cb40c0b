package store

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Category is a named, ordered set of collections. It owns its collections.
type Category struct {
	name string

	mu          sync.RWMutex
	collections []*Collection
	byName      map[string]*Collection

	parent atomic.Pointer[Store]
}

// NewCategory creates an empty category.
func NewCategory(name string) *Category {
	return &Category{name: name, byName: make(map[string]*Collection)}
}

func (c *Category) Name() string { return c.name }

// Store returns the owning store, or nil when detached.
func (c *Category) Store() *Store { return c.parent.Load() }

// TweakCollections returns the collections in insertion order.
func (c *Category) TweakCollections() []*Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Collection(nil), c.collections...)
}

// TweakCollectionWithName finds a collection by name.
func (c *Category) TweakCollectionWithName(name string) *Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byName[name]
}

// AddTweakCollection appends col to the category.
//
// It fails with ErrDuplicateIdentifier if a collection with the same name exists and with
// ErrInvalidOperation if col is owned by another category.
func (c *Category) AddTweakCollection(col *Collection) error {
	if col == nil {
		return fmt.Errorf("%w: nil collection", ErrInvalidOperation)
	}
	c.mu.Lock()
	if _, ok := c.byName[col.name]; ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: collection %q", ErrDuplicateIdentifier, col.name)
	}
	if !col.parent.CompareAndSwap(nil, c) {
		c.mu.Unlock()
		return fmt.Errorf("%w: collection %q already belongs to a category", ErrInvalidOperation, col.name)
	}
	if c.byName == nil {
		c.byName = make(map[string]*Collection)
	}
	c.collections = append(c.collections, col)
	c.byName[col.name] = col
	c.mu.Unlock()

	if s := c.parent.Load(); s != nil {
		for _, t := range col.Tweaks() {
			s.attach(t)
		}
	}
	return nil
}

// RemoveTweakCollection detaches col without notifying any observer.
// It reports whether col was part of the category.
func (c *Category) RemoveTweakCollection(col *Collection) bool {
	if col == nil {
		return false
	}
	c.mu.Lock()
	if c.byName[col.name] != col {
		c.mu.Unlock()
		return false
	}
	delete(c.byName, col.name)
	for i, it := range c.collections {
		if it == col {
			c.collections = append(c.collections[:i:i], c.collections[i+1:]...)
			break
		}
	}
	col.parent.Store(nil)
	c.mu.Unlock()

	if s := c.parent.Load(); s != nil {
		for _, t := range col.Tweaks() {
			s.detach(t)
		}
	}
	return true
}
