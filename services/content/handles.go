package content

import (
	"sync"
	"time"

	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/utils"
)

// handleStore keeps renderable content in memory, addressed by id, so
// the viewer layer can stream bytes without the core re-fetching them.
// Handles are request-scoped by contract; the janitor sweeps anything
// the viewer failed to release.
type handleStore struct {
	mu      sync.RWMutex
	handles map[string]*interfaces.RenderableHandle
}

func NewHandleStore() interfaces.RenderHandleStore {
	return &handleStore{
		handles: make(map[string]*interfaces.RenderableHandle),
	}
}

func (s *handleStore) Create(data []byte, contentType, fileName string) *interfaces.RenderableHandle {
	handle := &interfaces.RenderableHandle{
		ID:          utils.GenerateNanoIDWithPrefix("blob", 16),
		Data:        data,
		ContentType: contentType,
		FileName:    utils.SanitizeFilename(fileName),
		CreatedAt:   utils.Now(),
	}

	s.mu.Lock()
	s.handles[handle.ID] = handle
	s.mu.Unlock()

	return handle
}

func (s *handleStore) Get(id string) (*interfaces.RenderableHandle, error) {
	s.mu.RLock()
	handle, ok := s.handles[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.ErrHandleNotFound
	}
	return handle, nil
}

func (s *handleStore) Release(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[id]; !ok {
		return false
	}
	delete(s.handles, id)
	return true
}

func (s *handleStore) ReleaseExpired(olderThan time.Duration) int {
	cutoff := utils.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	released := 0
	for id, handle := range s.handles {
		if handle.CreatedAt.Before(cutoff) {
			delete(s.handles, id)
			released++
		}
	}
	return released
}

func (s *handleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}
