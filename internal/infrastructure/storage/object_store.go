// Package storage provides the object-store adapter for collateral
// attachments. The in-memory implementation stands in for the platform blob
// service in development and tests; the core only ever sees opaque
// references, so swapping the backend does not touch the domain.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

type object struct {
	data        []byte
	contentType string
}

// InMemoryObjectStore implements port.ObjectStore with process-local storage.
type InMemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
}

// NewInMemoryObjectStore creates a store resolving references under baseURL.
func NewInMemoryObjectStore(baseURL string) *InMemoryObjectStore {
	return &InMemoryObjectStore{
		objects: make(map[string]object),
		baseURL: baseURL,
	}
}

// Upload stores the bytes and returns an opaque reference.
func (s *InMemoryObjectStore) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: attachment is empty", valueobject.ErrValidation)
	}

	ref := "attachments/" + uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[ref] = object{data: stored, contentType: contentType}
	return ref, nil
}

// Resolve returns a retrievable URL for a stored reference.
func (s *InMemoryObjectStore) Resolve(_ context.Context, ref string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[ref]; !ok {
		return "", fmt.Errorf("object %s: %w", ref, valueobject.ErrNotFound)
	}
	return s.baseURL + "/" + ref, nil
}

// Get returns the stored bytes and content type.
func (s *InMemoryObjectStore) Get(_ context.Context, ref string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[ref]
	if !ok {
		return nil, "", fmt.Errorf("object %s: %w", ref, valueobject.ErrNotFound)
	}
	return obj.data, obj.contentType, nil
}
