package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

// File is a Store backed by a single YAML document mapping keys to blobs.
//
// The whole document is rewritten on every Save/Delete (write to a temp file, then
// rename), which keeps the file consistent if the process dies mid-write.
type File struct {
	path string

	mu     sync.Mutex
	m      map[string]string
	closed bool
}

// OpenFile opens (or lazily creates) the YAML blob file at path.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, m: make(map[string]string)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("blob: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f.m); err != nil {
		return nil, fmt.Errorf("blob: decode %s: %w", path, err)
	}
	if f.m == nil {
		f.m = make(map[string]string)
	}
	return f, nil
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

func (f *File) Load(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(s), true, nil
}

func (f *File) Save(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	prev, had := f.m[key]
	f.m[key] = string(data)
	if err := f.flushLocked(); err != nil {
		if had {
			f.m[key] = prev
		} else {
			delete(f.m, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	prev, had := f.m[key]
	if !had {
		return nil
	}
	delete(f.m, key)
	if err := f.flushLocked(); err != nil {
		f.m[key] = prev
		return err
	}
	return nil
}

func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.m), nil
}

// Close rejects further writes. Reads keep working on the last loaded state.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) flushLocked() error {
	data, err := yaml.Marshal(f.m)
	if err != nil {
		return fmt.Errorf("blob: encode: %w", err)
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("blob: write %s: %w", f.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("blob: write %s: %w", f.path, err)
	}
	return nil
}
