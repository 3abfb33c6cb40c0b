// Package blob provides the key-value blob stores a tweak store persists into.
//
// Keys are tweak identifiers; values are opaque bytes (value.Marshal output).
package blob

import (
	"errors"
	"sort"
	"sync"
)

// ErrClosed indicates a write to a closed store.
var ErrClosed = errors.New("blob: closed")

// Store is a synchronous key-value blob store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the bytes stored under key. ok is false when the key is absent.
	Load(key string) (data []byte, ok bool, err error)
	// Save stores data under key, replacing any previous bytes.
	Save(key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all keys in lexicographic order.
	Keys() ([]string, error)
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory { return &Memory{m: make(map[string][]byte)} }

func (s *Memory) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *Memory) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[key] = append([]byte(nil), data...)
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *Memory) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.m), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
