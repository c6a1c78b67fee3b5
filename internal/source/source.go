package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrIOFailure wraps every failure to produce bytes.
var ErrIOFailure = errors.New("i/o failure")

// Source loads the complete contents identified by id.
type Source interface {
	Load(ctx context.Context, id string) ([]byte, error)
}

// Observer receives load accounting. Implementations must be safe for
// concurrent use.
type Observer interface {
	BytesLoaded(scheme string, n int)
}

// File reads from the local filesystem. Both bare paths and file:// URIs
// are accepted.
type File struct{}

// Load reads the whole file.
func (File) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	path := strings.TrimPrefix(id, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIOFailure, path, err)
	}
	return data, nil
}

// Memory serves byte slices registered under names.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Put registers data under id.
func (m *Memory) Put(id string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[id] = data
}

// Load returns the bytes registered under id.
func (m *Memory) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[strings.TrimPrefix(id, "mem://")]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrIOFailure, id)
	}
	return data, nil
}
