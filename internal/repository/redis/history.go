package redis

import (
	"context"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
	"github.com/arklim/credcheck/internal/repository"
)

const defaultHistoryKeyPrefix = "credcheck:history:"

// HistoryStore reads fingerprints from a Redis set, one member per recorded
// fingerprint. The locator names the set under the configured prefix.
type HistoryStore struct {
	client    *red.Client
	keyPrefix string
}

// NewHistoryStore wires Redis storage for the fingerprint history.
func NewHistoryStore(client *red.Client, keyPrefix string) *HistoryStore {
	trimmed := strings.TrimSpace(keyPrefix)
	if trimmed == "" {
		trimmed = defaultHistoryKeyPrefix
	}
	return &HistoryStore{client: client, keyPrefix: trimmed}
}

// Open starts a lazy SSCAN over the locator's set. A locator whose key does
// not exist maps to repository.ErrNotFound so callers can tell a missing
// history apart from an empty one. Note that Redis deletes a set when its
// last member is removed, so a namespace with zero recorded fingerprints is
// indistinguishable from one that was never provisioned: fresh namespaces
// must be seeded with a placeholder member (or callers must treat the
// resulting HistoryUnavailable as first-use) before validation can succeed.
func (s *HistoryStore) Open(ctx context.Context, locator string) (port.HistoryIterator, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("redis history store not configured")
	}

	key := s.keyPrefix + locator

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis exists %s: %w", key, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, key)
	}

	return &scanIterator{
		key:  key,
		iter: s.client.SScan(ctx, key, 0, "", 0).Iterator(),
	}, nil
}

type scanIterator struct {
	key  string
	iter *red.ScanIterator
	seen int
}

// Next yields the next set member parsed as a fingerprint.
func (it *scanIterator) Next(ctx context.Context) (domain.Fingerprint, bool, error) {
	if !it.iter.Next(ctx) {
		if err := it.iter.Err(); err != nil {
			return nil, false, fmt.Errorf("redis scan %s: %w", it.key, err)
		}
		return nil, false, nil
	}
	it.seen++

	fp, err := domain.ParseFingerprint(strings.TrimSpace(it.iter.Val()))
	if err != nil {
		return nil, false, &repository.ParseError{Locator: it.key, Line: it.seen, Err: err}
	}
	return fp, true, nil
}

// Close is a no-op; SSCAN cursors hold no server-side state worth releasing.
func (it *scanIterator) Close() error {
	return nil
}
