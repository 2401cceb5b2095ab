// Package ports defines the driven-side interfaces of the assistant: caching
// for upstream API responses and persistence for conversation transcripts.
// Adapters (memory, file, Redis) implement these contracts.
package ports

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session ID cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// Cache is a TTL'd byte cache used to avoid hammering upstream APIs.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Turn is one recorded exchange in a conversation transcript.
type Turn struct {
	At     time.Time `json:"at"`
	Text   string    `json:"text"`
	Intent string    `json:"intent"`
	Reply  string    `json:"reply"`
}

// TranscriptStore persists conversation transcripts per session.
// This enables reviewing past sessions and resuming context across restarts.
type TranscriptStore interface {
	// Append adds a turn to the session's transcript, creating it if needed.
	Append(ctx context.Context, sessionID string, turn Turn) error

	// Load retrieves the session's transcript in order.
	// Returns ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) ([]Turn, error)

	// Delete removes the session's transcript.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session IDs.
	List(ctx context.Context) ([]string, error)
}
