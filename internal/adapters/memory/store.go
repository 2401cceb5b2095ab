package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/acelabs/ace/internal/ports"
)

// Store implements ports.TranscriptStore in process memory.
// Useful for tests and for ephemeral sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]ports.Turn
}

// NewStore creates an empty in-memory transcript store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]ports.Turn),
	}
}

// Append adds a turn to the session's transcript.
func (s *Store) Append(ctx context.Context, sessionID string, turn ports.Turn) error {
	s.mu.Lock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	s.mu.Unlock()
	return nil
}

// Load retrieves a copy of the session's transcript.
func (s *Store) Load(ctx context.Context, sessionID string) ([]ports.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}

	out := make([]ports.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Delete removes the session's transcript.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns the known session IDs, sorted for determinism.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
