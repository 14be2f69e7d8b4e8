package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by a Store when no document exists under a name.
var ErrNotFound = errors.New("catalog not found")

// Store reads and writes whole catalog documents by name.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, document []byte) error
}

// FileStore keeps each catalog in <dir>/<name>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing the catalog name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return data, nil
}

func (s *FileStore) Write(_ context.Context, name string, document []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	if err := os.WriteFile(s.Path(name), document, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}

// MemoryStore keeps documents in a map. It is safe for concurrent use, but
// the read-modify-write sequences built on it are not atomic.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), doc...), nil
}

func (s *MemoryStore) Write(_ context.Context, name string, document []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[name] = append([]byte(nil), document...)
	return nil
}
