package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/acelabs/ace/internal/adapters/file"
	"github.com/acelabs/ace/internal/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ports.RunTranscriptStoreContract(t, store)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := file.NewStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	turn := ports.Turn{At: time.Now(), Text: "hello", Intent: "greeting", Reply: "Hello!"}
	if err := store.Append(ctx, "session-1", turn); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	reopened, err := file.NewStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}

	turns, err := reopened.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(turns) != 1 || turns[0].Text != "hello" {
		t.Errorf("unexpected transcript after reopen: %+v", turns)
	}
}

func TestFileStore_SanitizesSessionID(t *testing.T) {
	store, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	turn := ports.Turn{At: time.Now(), Text: "hi", Intent: "greeting", Reply: "Hello!"}
	if err := store.Append(ctx, "../escape", turn); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected the session inside the store directory, got %v", ids)
	}
}
