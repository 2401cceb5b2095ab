package console

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes terminal color codes so styled messages can be spoken or
// logged as plain text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// SpeechOutput speaks replies aloud through the platform's text-to-speech
// command. Speech failure is logged, never surfaced; a broken speaker must
// not end the session.
type SpeechOutput struct {
	pronunciations map[string]string
	logger         *slog.Logger
	speak          func(ctx context.Context, text string) error
}

// SpeechOption configures a SpeechOutput.
type SpeechOption func(*SpeechOutput)

// WithSpeaker replaces the speech command, mainly for tests.
func WithSpeaker(speak func(ctx context.Context, text string) error) SpeechOption {
	return func(s *SpeechOutput) {
		s.speak = speak
	}
}

// WithSpeechLogger sets a structured logger.
func WithSpeechLogger(logger *slog.Logger) SpeechOption {
	return func(s *SpeechOutput) {
		s.logger = logger
	}
}

// NewSpeechOutput creates a speech output for the given GOOS value.
// The pronunciations map rewrites words the speech engine mangles, like
// "todo" to "to do".
func NewSpeechOutput(goos string, pronunciations map[string]string, opts ...SpeechOption) *SpeechOutput {
	s := &SpeechOutput{
		pronunciations: pronunciations,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if s.speak == nil {
		command := "espeak"
		if goos == "darwin" {
			command = "say"
		}
		s.speak = func(ctx context.Context, text string) error {
			return exec.CommandContext(ctx, command, text).Run()
		}
	}

	return s
}

// Broadcast speaks the message. Always returns nil.
func (s *SpeechOutput) Broadcast(message string) error {
	text := s.Pronounce(StripANSI(message))

	if err := s.speak(context.Background(), text); err != nil {
		s.logger.Warn("speech output failed", "error", err)
	}
	return nil
}

// Pronounce applies the configured pronunciation substitutions.
func (s *SpeechOutput) Pronounce(message string) string {
	for from, to := range s.pronunciations {
		message = strings.ReplaceAll(message, from, to)
	}
	return message
}
