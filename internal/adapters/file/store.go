// Package file persists session transcripts as JSON files on disk, one file
// per session. It is the default store for single-machine installs where
// Redis would be overkill.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/acelabs/ace/internal/ports"
)

// Store implements ports.TranscriptStore on the local filesystem.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a file-backed transcript store rooted at dir, creating the
// directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(sessionID string) string {
	// Session IDs come from uuid.NewString, but guard against separators
	// anyway so a hostile ID cannot escape the directory.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(sessionID)
	return filepath.Join(s.dir, safe+".json")
}

// Append reads the session file, appends the turn, and writes it back.
func (s *Store) Append(ctx context.Context, sessionID string, turn ports.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, err := s.read(sessionID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	turns = append(turns, turn)

	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	tmp := s.path(sessionID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return os.Rename(tmp, s.path(sessionID))
}

// Load retrieves the full transcript for a session.
func (s *Store) Load(ctx context.Context, sessionID string) ([]ports.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, err := s.read(sessionID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, err
	}
	return turns, nil
}

func (s *Store) read(sessionID string) ([]ports.Turn, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return nil, err
	}

	var turns []ports.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	return turns, nil
}

// Delete removes the session file. Deleting a missing session is not an
// error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the session IDs present on disk, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
