// Package http exposes the assistant over a small JSON API, so other tools
// can classify text and fetch replies without going through the terminal.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ace "github.com/acelabs/ace"
	"github.com/acelabs/ace/internal/ports"
)

// Assistant is the part of the engine the HTTP surface needs.
type Assistant interface {
	Respond(ctx context.Context, text string) (ace.Reply, error)
	Classify(ctx context.Context, text string) (string, float64)
	Intents() []string
}

// Server routes HTTP requests to an Assistant.
type Server struct {
	assistant Assistant
	logger    *slog.Logger
	metrics   http.Handler
	store     ports.TranscriptStore
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a metrics endpoint at /metrics.
func WithMetricsHandler(handler http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = handler
	}
}

// WithTranscriptStore enables the session endpoints, recording every
// /v1/respond call that names a session.
func WithTranscriptStore(store ports.TranscriptStore) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// NewHandler creates the HTTP handler for the assistant.
func NewHandler(assistant Assistant, opts ...ServerOption) http.Handler {
	server := &Server{assistant: assistant}

	for _, opt := range opts {
		opt(server)
	}

	if server.logger == nil {
		server.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", server.health)
	r.Post("/v1/classify", server.classify)
	r.Post("/v1/respond", server.respond)
	r.Get("/v1/intents", server.intents)

	if server.store != nil {
		r.Get("/v1/sessions", server.listSessions)
		r.Get("/v1/sessions/{id}", server.getSession)
		r.Delete("/v1/sessions/{id}", server.deleteSession)
	}

	if server.metrics != nil {
		r.Method("GET", "/metrics", server.metrics)
	}

	return r
}

type textRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

type classifyResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeText(w, r)
	if !ok {
		return
	}

	intent, confidence := s.assistant.Classify(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, classifyResponse{Intent: intent, Confidence: confidence})
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeText(w, r)
	if !ok {
		return
	}

	reply, err := s.assistant.Respond(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("respond failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to produce a reply"})
		return
	}

	if s.store != nil && req.SessionID != "" {
		turn := ports.Turn{
			At:     time.Now(),
			Text:   req.Text,
			Intent: reply.Intent,
			Reply:  reply.Text,
		}
		if err := s.store.Append(r.Context(), req.SessionID, turn); err != nil {
			s.logger.Warn("failed to record turn", "session", req.SessionID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) intents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"intents": s.assistant.Intents()})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list sessions"})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	turns, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		s.logger.Error("failed to load session", "session", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load session"})
		return
	}

	writeJSON(w, http.StatusOK, map[string][]ports.Turn{"turns": turns})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete session", "session", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete session"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeText(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
