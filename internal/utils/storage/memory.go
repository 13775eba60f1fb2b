package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage keeps objects in memory and records every call, which makes it the
// storage of choice for tests and local runs. It is safe for concurrent use.
type MemoryStorage struct {
	baseURL string
	mu      sync.Mutex
	objects map[string][]byte
	uploads []string
	deletes []string

	// FailUpload / FailDelete make the matching call return an error when set.
	FailUpload bool
	FailDelete map[string]bool
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		baseURL:    baseURL,
		objects:    make(map[string][]byte),
		FailDelete: make(map[string]bool),
	}
}

func (m *MemoryStorage) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	if !isAllowed(contentType, AllowImage) {
		return "", ErrFileTypeNotAllowed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpload {
		return "", fmt.Errorf("upload rejected")
	}

	key := fmt.Sprintf("%s/%s%s", imageFolder, uuid.NewString(), extensionFor(contentType))
	m.objects[key] = append([]byte(nil), data...)
	m.uploads = append(m.uploads, key)
	return key, nil
}

func (m *MemoryStorage) DeleteImage(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, key)
	if m.FailDelete[key] {
		return fmt.Errorf("delete rejected: %s", key)
	}
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return joinURL(m.baseURL, key)
}

// Put stores an object under a caller chosen key.
func (m *MemoryStorage) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
}

func (m *MemoryStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Uploads returns the keys produced by Upload, in call order.
func (m *MemoryStorage) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uploads...)
}

// Deletes returns the keys passed to DeleteImage, in call order.
func (m *MemoryStorage) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}

func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

var _ Storage = (*MemoryStorage)(nil)
