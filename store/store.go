package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/evan-idocoding/tweaks/store/blob"
	"github.com/evan-idocoding/tweaks/value"
)

type config struct {
	blobs  blob.Store
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*config)

// WithBlobStore persists current values into b, keyed by tweak identifier.
func WithBlobStore(b blob.Store) Option {
	return func(c *config) { c.blobs = b }
}

// WithLogger sets the logger used for persistence diagnostics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Store is the root of the category tree. It owns its categories, indexes every reachable
// tweak by identifier and persists current values.
//
// Structural mutation and value changes are safe for concurrent use, but the intended use
// is a single goroutine driving edits, as observers run synchronously on the writer.
type Store struct {
	mu         sync.RWMutex
	categories []*Category
	byName     map[string]*Category
	index      map[string]*Tweak

	blobs  blob.Store
	logger *slog.Logger
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Store{
		byName: make(map[string]*Category),
		index:  make(map[string]*Tweak),
		blobs:  cfg.blobs,
		logger: cfg.logger,
	}
}

var (
	defaultOnce sync.Once
	defaultS    *Store
)

// Default returns the process-wide Store. It starts without a blob store; call
// SetBlobStore to persist.
func Default() *Store {
	defaultOnce.Do(func() { defaultS = New() })
	return defaultS
}

// SetBlobStore switches persistence to b (nil disables it) and reloads every tweak from it.
func (s *Store) SetBlobStore(b blob.Store) error {
	s.mu.Lock()
	s.blobs = b
	s.mu.Unlock()
	return s.LoadAll()
}

// TweakCategories returns the categories in insertion order.
func (s *Store) TweakCategories() []*Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Category(nil), s.categories...)
}

// TweakCategoryWithName finds a category by name.
func (s *Store) TweakCategoryWithName(name string) *Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byName[name]
}

// TweakWithIdentifier finds any tweak of the store by identifier.
func (s *Store) TweakWithIdentifier(id string) *Tweak {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[id]
}

// Tweaks returns every tweak in tree order (category, collection, tweak).
func (s *Store) Tweaks() []*Tweak {
	var out []*Tweak
	for _, cat := range s.TweakCategories() {
		for _, col := range cat.TweakCollections() {
			out = append(out, col.Tweaks()...)
		}
	}
	return out
}

// AddTweakCategory appends cat to the store, indexing and loading all of its tweaks.
//
// It fails with ErrDuplicateIdentifier if a category with the same name exists and with
// ErrInvalidOperation if cat is owned by another store.
func (s *Store) AddTweakCategory(cat *Category) error {
	if cat == nil {
		return fmt.Errorf("%w: nil category", ErrInvalidOperation)
	}
	s.mu.Lock()
	if _, ok := s.byName[cat.name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: category %q", ErrDuplicateIdentifier, cat.name)
	}
	if !cat.parent.CompareAndSwap(nil, s) {
		s.mu.Unlock()
		return fmt.Errorf("%w: category %q already belongs to a store", ErrInvalidOperation, cat.name)
	}
	s.categories = append(s.categories, cat)
	s.byName[cat.name] = cat
	s.mu.Unlock()

	for _, col := range cat.TweakCollections() {
		for _, t := range col.Tweaks() {
			s.attach(t)
		}
	}
	return nil
}

// RemoveTweakCategory detaches cat without notifying any observer.
// It reports whether cat was part of the store.
func (s *Store) RemoveTweakCategory(cat *Category) bool {
	if cat == nil {
		return false
	}
	s.mu.Lock()
	if s.byName[cat.name] != cat {
		s.mu.Unlock()
		return false
	}
	delete(s.byName, cat.name)
	for i, it := range s.categories {
		if it == cat {
			s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
			break
		}
	}
	cat.parent.Store(nil)
	s.mu.Unlock()

	for _, col := range cat.TweakCollections() {
		for _, t := range col.Tweaks() {
			s.detach(t)
		}
	}
	return true
}

// Reset clears the current value of every tweak, reverting all of them to their defaults.
// The tree structure is kept. Observers of each tweak are notified.
func (s *Store) Reset() {
	for _, t := range s.Tweaks() {
		if t.action {
			continue
		}
		t.assign(value.None(), true)
	}
}

// LoadAll reloads the current value of every tweak from the blob store. Tweaks whose value
// changed are notified. Values that are missing, undecodable or outside the possible
// values clear the override.
func (s *Store) LoadAll() error {
	b := s.blobStore()
	var errs []error
	for _, t := range s.Tweaks() {
		if t.action {
			continue
		}
		v := value.None()
		if b != nil {
			loaded, err := s.read(b, t)
			if err != nil {
				errs = append(errs, err)
			} else {
				v = loaded
			}
		}
		if !value.Equal(v, t.CurrentValue()) {
			t.assign(v, false)
		}
	}
	return errors.Join(errs...)
}

// SaveOne persists v under id. Saving none deletes the key.
func (s *Store) SaveOne(id string, v value.Value) error {
	b := s.blobStore()
	if b == nil {
		return nil
	}
	if v.IsNone() {
		return b.Delete(id)
	}
	data, err := value.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", id, err)
	}
	return b.Save(id, data)
}

func (s *Store) blobStore() blob.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs
}

// attach indexes t and loads its persisted value.
func (s *Store) attach(t *Tweak) {
	s.mu.Lock()
	if prev, ok := s.index[t.id]; ok && prev != t {
		s.mu.Unlock()
		s.logger.Warn("tweaks: identifier already indexed, keeping first", "id", t.id)
		return
	}
	s.index[t.id] = t
	b := s.blobs
	s.mu.Unlock()

	if b == nil || t.action {
		return
	}
	v, err := s.read(b, t)
	if err != nil {
		s.logger.Warn("tweaks: ignoring persisted value", "id", t.id, "err", err)
		return
	}
	if !v.IsNone() {
		t.load(v)
	}
}

func (s *Store) detach(t *Tweak) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index[t.id] == t {
		delete(s.index, t.id)
	}
}

func (s *Store) read(b blob.Store, t *Tweak) (value.Value, error) {
	data, ok, err := b.Load(t.id)
	if err != nil {
		return value.None(), fmt.Errorf("store: load %q: %w", t.id, err)
	}
	if !ok {
		return value.None(), nil
	}
	v, err := value.Unmarshal(data)
	if err != nil {
		return value.None(), fmt.Errorf("store: decode %q: %w", t.id, err)
	}
	if !t.accepts(v) {
		return value.None(), fmt.Errorf("%w: persisted %q value %v", ErrOutOfRange, t.id, v)
	}
	return v, nil
}

func (s *Store) persist(t *Tweak, v value.Value) {
	if err := s.SaveOne(t.id, v); err != nil {
		s.logger.Warn("tweaks: persisting value failed", "id", t.id, "err", err)
	}
}
