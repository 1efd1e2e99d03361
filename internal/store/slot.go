package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Backend names accepted by OpenSlot
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// OpenSlot opens the named backend rooted at dir
func OpenSlot(backend, dir string) (Slot, error) {
	switch backend {
	case BackendFile, "":
		return NewFileSlot(dir), nil
	case BackendSQLite:
		return OpenSQLiteSlot(filepath.Join(dir, "damasgochi.db"))
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("open slot: unknown backend %q", backend)
	}
}

// FileSlot keeps one file per key in a directory
type FileSlot struct {
	dir string
}

// NewFileSlot returns a FileSlot rooted at dir. The directory is created on first write.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

func (s *FileSlot) path(key string) (string, error) {
	if key == "" || filepath.Base(key) != key {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".dat"), nil
}

func (s *FileSlot) Get(_ context.Context, key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoState
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Put replaces the file through a rename so a crash never leaves half a record behind
func (s *FileSlot) Put(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileSlot) Close() error { return nil }

// MemorySlot keeps values in memory. Useful for tests and throwaway sessions.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (s *MemorySlot) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNoState
	}
	return v, nil
}

func (s *MemorySlot) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemorySlot) Close() error { return nil }
