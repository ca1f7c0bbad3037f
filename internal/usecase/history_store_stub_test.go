package usecase

import (
	"context"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
)

// stubHistoryStore serves a fixed fingerprint list, or fails on demand.
type stubHistoryStore struct {
	fingerprints []domain.Fingerprint
	openErr      error
	nextErr      error
	closed       bool
}

func (s *stubHistoryStore) Open(ctx context.Context, locator string) (port.HistoryIterator, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &stubIterator{store: s}, nil
}

type stubIterator struct {
	store *stubHistoryStore
	pos   int
}

func (it *stubIterator) Next(ctx context.Context) (domain.Fingerprint, bool, error) {
	if it.store.nextErr != nil {
		return nil, false, it.store.nextErr
	}
	if it.pos >= len(it.store.fingerprints) {
		return nil, false, nil
	}
	fp := it.store.fingerprints[it.pos]
	it.pos++
	return fp, true, nil
}

func (it *stubIterator) Close() error {
	it.store.closed = true
	return nil
}

// blockingHistoryStore never yields; Next waits for the context deadline.
type blockingHistoryStore struct{}

func (s *blockingHistoryStore) Open(ctx context.Context, locator string) (port.HistoryIterator, error) {
	return &blockingIterator{}, nil
}

type blockingIterator struct{}

func (it *blockingIterator) Next(ctx context.Context) (domain.Fingerprint, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}

func (it *blockingIterator) Close() error {
	return nil
}
