package ace_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	ace "github.com/acelabs/ace"
)

type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) Get(ctx context.Context) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type collectingSink struct {
	messages []string
	err      error
}

func (c *collectingSink) Broadcast(message string) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, message)
	return nil
}

func TestRunnerStopsOnExitIntent(t *testing.T) {
	input := &scriptedInput{lines: []string{"hello", "bye", "hello"}}
	sink := &collectingSink{}

	runner := ace.NewRunner(input, sink)

	if err := runner.Run(context.Background(), newAssistant()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.messages) != 2 {
		t.Fatalf("expected 2 replies before exit, got %v", sink.messages)
	}
	if sink.messages[1] != "Goodbye!" {
		t.Errorf("unexpected final reply %q", sink.messages[1])
	}
	if len(input.lines) != 1 {
		t.Errorf("loop should not read past the exit intent")
	}
}

func TestRunnerExitsCleanlyOnEOF(t *testing.T) {
	runner := ace.NewRunner(&scriptedInput{lines: []string{"hello"}}, &collectingSink{})

	if err := runner.Run(context.Background(), newAssistant()); err != nil {
		t.Errorf("expected clean exit on EOF, got %v", err)
	}
}

func TestRunnerBroadcastsToAllSinks(t *testing.T) {
	first := &collectingSink{}
	second := &collectingSink{}
	runner := ace.NewRunner(&scriptedInput{lines: []string{"hello", "bye"}}, first, second)

	if err := runner.Run(context.Background(), newAssistant()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.messages) != 2 || len(second.messages) != 2 {
		t.Errorf("expected both sinks to see every reply: %v / %v", first.messages, second.messages)
	}
}

func TestRunnerRecordsTranscript(t *testing.T) {
	runner := ace.NewRunner(&scriptedInput{lines: []string{"hello", "bye"}}, &collectingSink{})

	var turns []ace.Reply
	runner.Transcript = func(ctx context.Context, reply ace.Reply, text string, at time.Time) {
		turns = append(turns, reply)
	}

	if err := runner.Run(context.Background(), newAssistant()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(turns) != 2 {
		t.Fatalf("expected 2 recorded turns, got %d", len(turns))
	}
	if !turns[1].Exit {
		t.Errorf("final turn should carry the exit flag")
	}
}

func TestRunnerSurfacesOutputErrors(t *testing.T) {
	sink := &collectingSink{err: errors.New("broken pipe")}
	runner := ace.NewRunner(&scriptedInput{lines: []string{"hello"}}, sink)

	if err := runner.Run(context.Background(), newAssistant()); err == nil {
		t.Error("expected an output error")
	}
}

func TestRunnerRequiresIO(t *testing.T) {
	if err := ace.NewRunner(nil).Run(context.Background(), newAssistant()); err == nil {
		t.Error("expected an error without input")
	}

	if err := ace.NewRunner(&scriptedInput{}).Run(context.Background(), newAssistant()); err == nil {
		t.Error("expected an error without outputs")
	}
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocking := blockingInput{ctx: ctx}
	runner := ace.NewRunner(blocking, &collectingSink{})

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, newAssistant())
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean exit on cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

type blockingInput struct {
	ctx context.Context
}

func (b blockingInput) Get(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
