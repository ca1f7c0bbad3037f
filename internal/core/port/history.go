package port

import (
	"context"

	"github.com/arklim/credcheck/internal/core/domain"
)

// HistoryIterator walks a store's fingerprint sequence lazily. Next returns
// false once the sequence is exhausted; a non-nil error means the sequence
// could not be read further and the iteration must be abandoned.
type HistoryIterator interface {
	Next(ctx context.Context) (domain.Fingerprint, bool, error)
	Close() error
}

// HistoryStore is a read-only collection of previously recorded credential
// fingerprints. The locator is backend-specific: a file path, a Redis key,
// or a namespace column value. Implementations must support concurrent
// independent iterations; no write path exists in this scope.
type HistoryStore interface {
	Open(ctx context.Context, locator string) (HistoryIterator, error)
}

// Fingerprinter derives the opaque reuse-detection value for a credential.
// Implementations must be deterministic: equal credentials always yield
// equal fingerprints.
type Fingerprinter interface {
	Fingerprint(cred domain.Credential) (domain.Fingerprint, error)
	// Scheme names the derivation for logging and config selection.
	Scheme() string
}
