package ports

import (
	"context"
	"errors"
	"testing"
	"time"
)

// RunTranscriptStoreContract runs a suite of tests to verify that a
// TranscriptStore implementation honors the interface semantics.
// Adapter tests call this against their concrete store.
func RunTranscriptStoreContract(t *testing.T, store TranscriptStore) {
	t.Helper()
	ctx := context.Background()

	turnA := Turn{At: time.Now().UTC().Truncate(time.Second), Text: "hello", Intent: "greeting", Reply: "Hello!"}
	turnB := Turn{At: turnA.At.Add(time.Second), Text: "bye", Intent: "goodbye", Reply: "Goodbye!"}

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-session")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Append_And_Load", func(t *testing.T) {
		if err := store.Append(ctx, "contract-1", turnA); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if err := store.Append(ctx, "contract-1", turnB); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		turns, err := store.Load(ctx, "contract-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(turns) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(turns))
		}
		if turns[0].Intent != "greeting" || turns[1].Intent != "goodbye" {
			t.Errorf("turns out of order: %v", turns)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Append(ctx, "contract-2", turnA); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for _, want := range []string{"contract-1", "contract-2"} {
			if !lookup[want] {
				t.Errorf("session %q missing from list %v", want, ids)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "contract-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "contract-1"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}

		// Deleting a missing session is not an error.
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("delete of missing session failed: %v", err)
		}
	})
}

// RunCacheContract verifies the TTL cache semantics shared by all cache
// adapters.
func RunCacheContract(t *testing.T, cache Cache, advance func(d time.Duration)) {
	t.Helper()
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if ok {
			t.Error("expected a miss for an absent key")
		}
	})

	t.Run("Set_And_Get", func(t *testing.T) {
		if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		val, ok, err := cache.Get(ctx, "k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok || string(val) != "v" {
			t.Errorf("got (%q, %v), want (\"v\", true)", val, ok)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		if err := cache.Set(ctx, "ephemeral", []byte("x"), 50*time.Millisecond); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		advance(100 * time.Millisecond)

		_, ok, err := cache.Get(ctx, "ephemeral")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if ok {
			t.Error("expected the entry to have expired")
		}
	})
}
