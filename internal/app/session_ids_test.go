package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yuwelongo/internal/infra/memory"
)

func TestSessionIDsGetOrCreate(t *testing.T) {
	ctx := context.Background()
	ids := NewSessionIDs(memory.NewSessionStore(), "tab-1")

	first := ids.GetOrCreate(ctx)
	if first == "" || strings.ContainsAny(first, " /?&\"") {
		t.Fatalf("expected url/json safe id, got %q", first)
	}
	if again := ids.GetOrCreate(ctx); again != first {
		t.Fatalf("expected same id before clear, got %q and %q", first, again)
	}

	ids.Clear(ctx)
	ids.Clear(ctx)
	if fresh := ids.GetOrCreate(ctx); fresh == first {
		t.Fatalf("expected a new id after clear")
	}
}

func TestSessionIDsAreDistinctAcrossFastCalls(t *testing.T) {
	ctx := context.Background()
	ids := NewSessionIDs(memory.NewSessionStore(), "tab-1")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := ids.GetOrCreate(ctx)
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
		ids.Clear(ctx)
	}
}

func TestSessionIDsScopedPerClient(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	a := NewSessionIDs(store, "tab-a").GetOrCreate(ctx)
	b := NewSessionIDs(store, "tab-b").GetOrCreate(ctx)
	if a == b {
		t.Fatalf("expected separate slots per client")
	}
}

func TestSessionIDsSurviveStoreFailure(t *testing.T) {
	ids := NewSessionIDs(brokenStore{}, "tab-1")
	if id := ids.GetOrCreate(context.Background()); id == "" {
		t.Fatalf("expected an id even when the store is down")
	}
	ids.Clear(context.Background())
}

func TestSessionIDsKeepStoredIDOnReadFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{SessionStore: memory.NewSessionStore(), failLoads: 1}
	if err := store.Save(ctx, "tab-1:"+SessionSlot, "resumable"); err != nil {
		t.Fatalf("save: %v", err)
	}
	ids := NewSessionIDs(store, "tab-1")

	if id := ids.GetOrCreate(ctx); id == "" || id == "resumable" {
		t.Fatalf("expected a throwaway id while the store is unreadable, got %q", id)
	}
	if id := ids.GetOrCreate(ctx); id != "resumable" {
		t.Fatalf("stored session must survive a failed read, got %q", id)
	}
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (string, bool, error) {
	return "", false, errors.New("redis: connection refused")
}

func (brokenStore) Save(context.Context, string, string) error {
	return errors.New("redis: connection refused")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("redis: connection refused")
}

// flakyStore fails the first failLoads reads.
type flakyStore struct {
	*memory.SessionStore
	failLoads int
}

func (s *flakyStore) Load(ctx context.Context, key string) (string, bool, error) {
	if s.failLoads > 0 {
		s.failLoads--
		return "", false, errors.New("redis: i/o timeout")
	}
	return s.SessionStore.Load(ctx, key)
}
