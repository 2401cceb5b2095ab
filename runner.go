package ace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// InputSource provides user utterances to the Runner.
type InputSource interface {
	// Get blocks until the user provides a line of text.
	// It returns io.EOF when the source is exhausted.
	Get(ctx context.Context) (string, error)
}

// OutputSink receives assistant replies. A Runner may broadcast each reply to
// several sinks (terminal and speech, for example).
type OutputSink interface {
	Broadcast(message string) error
}

// TranscriptFunc records a completed turn. Errors are the recorder's problem;
// the loop never fails because a transcript write did.
type TranscriptFunc func(ctx context.Context, reply Reply, text string, at time.Time)

// Runner drives the assistant loop over an input source and a set of output
// sinks until an exit intent fires or the input is exhausted. IO is injected so
// the loop can be tested and embedded in different frontends.
type Runner struct {
	Input      InputSource
	Outputs    []OutputSink
	Transcript TranscriptFunc
}

// NewRunner creates a Runner for the given input and outputs.
func NewRunner(input InputSource, outputs ...OutputSink) *Runner {
	return &Runner{
		Input:   input,
		Outputs: outputs,
	}
}

// Run executes the assistant loop until termination. It returns nil on a clean
// exit (exit intent, EOF, or context cancellation mid-read).
func (r *Runner) Run(ctx context.Context, assistant *Assistant) error {
	if r.Input == nil {
		return fmt.Errorf("input source must be set")
	}
	if len(r.Outputs) == 0 {
		return fmt.Errorf("at least one output sink must be set")
	}

	for {
		text, err := r.Input.Get(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		reply, err := assistant.Respond(ctx, text)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("respond error: %w", err)
		}

		for _, out := range r.Outputs {
			if err := out.Broadcast(reply.Text); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}

		if r.Transcript != nil {
			r.Transcript(ctx, reply, text, time.Now())
		}

		if reply.Exit {
			return nil
		}
	}
}
