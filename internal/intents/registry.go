// Package intents maps intent labels to handler functions. The registry
// decides which handler runs for a classified label, whether it receives the
// raw input text, and whether the session ends afterwards.
package intents

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Unknown is the registry's fallback intent name.
const Unknown = "unknown"

// Handler produces the reply for one intent. Handlers registered without
// WithText receive an empty string.
type Handler func(ctx context.Context, text string) string

type entry struct {
	handler   Handler
	exit      bool
	wantsText bool
}

// RegisterOption configures a registration.
type RegisterOption func(*entry)

// WithExit marks the intent as ending the session after it runs.
func WithExit() RegisterOption {
	return func(e *entry) {
		e.exit = true
	}
}

// WithText forwards the raw input text to the handler.
func WithText() RegisterOption {
	return func(e *entry) {
		e.wantsText = true
	}
}

// Registry holds the registered intents. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

// Register adds a handler under the given intent name. Registering the same
// name again replaces the previous handler.
func (r *Registry) Register(name string, handler Handler, opts ...RegisterOption) {
	e := entry{handler: handler}
	for _, opt := range opts {
		opt(&e)
	}

	r.mu.Lock()
	r.entries[name] = e
	r.mu.Unlock()
}

// Run dispatches the named intent and reports whether the session should
// end. Unregistered names fall back to the unknown handler.
func (r *Registry) Run(ctx context.Context, name, text string) (string, bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	if !ok {
		e, ok = r.entries[Unknown]
	}
	r.mu.RUnlock()

	if !ok {
		return "Sorry, I don't know what you mean.", false
	}

	if !e.wantsText {
		text = ""
	}

	response := e.handler(ctx, text)
	r.logger.Debug("intent dispatched", "intent", name, "response", response)

	return response, e.exit
}

// Names lists the registered intent names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
