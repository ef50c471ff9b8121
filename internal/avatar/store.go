package avatar

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Store uploads avatar images to an external host and returns the public URL
// the image is served from.
type Store interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// MemoryStore keeps uploads in memory. Used in development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore constructs an in-memory avatar store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Upload buffers the object and returns a synthetic URL.
func (s *MemoryStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "memory://avatars/" + key, nil
}

// Len reports the number of stored objects. For tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
