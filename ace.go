package ace

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// UnknownIntent is the label dispatched when the classifier is not confident
// enough in any prediction, or when the predicted intent has no handler.
const UnknownIntent = "unknown"

// Classifier maps free text to an intent label with a confidence score.
type Classifier interface {
	Predict(text string) (intent string, confidence float64)
}

// Registry dispatches an intent label to its registered handler.
type Registry interface {
	// Run executes the handler for the named intent and reports whether the
	// session should end afterwards. Unregistered names fall back to the
	// unknown handler.
	Run(ctx context.Context, name, text string) (response string, exit bool)

	// Names lists the registered intent names.
	Names() []string
}

// Reply is the outcome of a single assistant turn.
type Reply struct {
	// Text is the response to show (or speak) to the user.
	Text string `json:"text"`

	// Intent is the label the classifier settled on.
	Intent string `json:"intent"`

	// Confidence is the classifier's confidence in the intent.
	Confidence float64 `json:"confidence"`

	// Exit reports that the dispatched intent ends the session.
	Exit bool `json:"exit"`
}

// Hooks are optional observability callbacks invoked by the Assistant.
type Hooks struct {
	// OnReply fires after each completed turn with the reply and the time the
	// turn took (classification plus handler execution).
	OnReply func(reply Reply, elapsed time.Duration)
}

// Assistant ties a classifier and an intent registry into the core pipeline:
// text in, intent label, handler, text out.
type Assistant struct {
	classifier Classifier
	registry   Registry
	logger     *slog.Logger
	hooks      Hooks
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets a structured logger for the assistant.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(a *Assistant) {
		a.hooks = hooks
	}
}

// New creates an Assistant from a classifier and a registry.
func New(classifier Classifier, registry Registry, opts ...Option) *Assistant {
	a := &Assistant{
		classifier: classifier,
		registry:   registry,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return a
}

// Classify predicts the intent of the given text without dispatching it.
func (a *Assistant) Classify(ctx context.Context, text string) (string, float64) {
	return a.classifier.Predict(text)
}

// Intents lists the intent names the assistant can dispatch.
func (a *Assistant) Intents() []string {
	return a.registry.Names()
}

// Respond runs one full turn: classify the text, dispatch the intent, and
// return the handler's response.
func (a *Assistant) Respond(ctx context.Context, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	start := time.Now()
	text = strings.TrimSpace(text)

	intent, confidence := a.classifier.Predict(text)
	a.logger.Debug("intent predicted", "intent", intent, "confidence", confidence)

	response, exit := a.registry.Run(ctx, intent, text)

	reply := Reply{
		Text:       response,
		Intent:     intent,
		Confidence: confidence,
		Exit:       exit,
	}

	a.logger.Info("turn completed", "intent", intent, "exit", exit)

	if a.hooks.OnReply != nil {
		a.hooks.OnReply(reply, time.Since(start))
	}

	return reply, nil
}
