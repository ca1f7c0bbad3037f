package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/repository"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client, server
}

func collect(t *testing.T, store *HistoryStore, locator string) []domain.Fingerprint {
	t.Helper()

	ctx := context.Background()
	it, err := store.Open(ctx, locator)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer it.Close()

	var out []domain.Fingerprint
	for {
		fp, ok, err := it.Next(ctx)
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, fp)
	}
}

func TestHistoryStore_Iterate(t *testing.T) {
	client, server := newTestRedis(t)
	store := NewHistoryStore(client, "hist:")

	if _, err := server.SetAdd("hist:caleb", "85", "deadbeef"); err != nil {
		t.Fatalf("seed set: %v", err)
	}

	got := collect(t, store, "caleb")
	if len(got) != 2 {
		t.Fatalf("expected 2 fingerprints, got %d", len(got))
	}

	found := false
	for _, fp := range got {
		if fp.Equal(domain.LegacyFingerprint(85)) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected legacy fingerprint 85 in %v", got)
	}
}

func TestHistoryStore_MissingKey(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewHistoryStore(client, "")

	_, err := store.Open(context.Background(), "nobody")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryStore_MalformedMember(t *testing.T) {
	client, server := newTestRedis(t)
	store := NewHistoryStore(client, "hist:")

	if _, err := server.SetAdd("hist:caleb", "not-a-fingerprint"); err != nil {
		t.Fatalf("seed set: %v", err)
	}

	ctx := context.Background()
	it, err := store.Open(ctx, "caleb")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer it.Close()

	_, _, err = it.Next(ctx)
	var parseErr *repository.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
