package redis_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/acelabs/ace/internal/adapters/redis"
	"github.com/acelabs/ace/internal/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)

	store := redis.NewStoreFromClient(client)
	ports.RunTranscriptStoreContract(t, store)
}

func TestRedisCache_Contract(t *testing.T) {
	mr, client := newTestClient(t)

	cache := redis.NewCacheFromClient(client)
	ports.RunCacheContract(t, cache, func(d time.Duration) {
		mr.FastForward(d)
	})
}

func TestRedisStore_TTLPrunesIndex(t *testing.T) {
	mr, client := newTestClient(t)

	store := redis.NewStoreFromClient(client, redis.WithStoreTTL(time.Second))

	turn := ports.Turn{At: time.Now(), Text: "hi", Intent: "greeting", Reply: "Hello!"}
	if err := store.Append(t.Context(), "short-lived", turn); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	ids, err := store.List(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 session, got %v", ids)
	}

	// After the TTL the transcript key is gone and List prunes the index.
	mr.FastForward(2 * time.Second)

	// miniredis advances key expiry; ZREMRANGEBYSCORE uses wall time, so make
	// the score window expire by waiting out the one-second TTL.
	time.Sleep(1100 * time.Millisecond)

	ids, err = store.List(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected index to be pruned, got %v", ids)
	}
}
