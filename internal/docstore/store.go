// Package docstore treats the cloud disk as a document database: whole JSON
// values persisted as single objects at fixed paths. The only mutation
// primitive is a whole-document rewrite.
package docstore

import (
	"context"
	"sync"
)

// Store is the narrow seam between the services and the remote disk. Read
// reports absence via the bool rather than an error so first use of any
// collection is seamless.
type Store interface {
	Read(ctx context.Context, path string) (data []byte, found bool, err error)
	Write(ctx context.Context, path string, data []byte) error
	Delete(ctx context.Context, path string) error
}

// Folders is the directory side of the store, kept separate from Store so
// document consumers do not depend on it.
type Folders interface {
	CreateFolder(ctx context.Context, path string) error
	RemoveFolder(ctx context.Context, path string) error
}

// MemoryStore is an in-process Store and Folders used by tests and dev mode.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string][]byte
	folders map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string][]byte),
		folders: make(map[string]bool),
	}
}

func (m *MemoryStore) Read(_ context.Context, path string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[path]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (m *MemoryStore) Write(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.docs[path] = cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, path)
	return nil
}

func (m *MemoryStore) CreateFolder(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[path] = true
	return nil
}

func (m *MemoryStore) RemoveFolder(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.folders, path)
	return nil
}

// HasFolder reports whether CreateFolder was called for path. Test helper.
func (m *MemoryStore) HasFolder(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.folders[path]
}
