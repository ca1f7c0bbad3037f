package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
	"github.com/arklim/credcheck/internal/repository"
)

// HistoryStore reads fingerprints from a plain text file, one per line.
// Blank lines are ignored; anything else must parse as a fingerprint.
type HistoryStore struct{}

// NewHistoryStore wires a file-backed history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Open opens the file at locator for one iteration. The returned iterator
// owns the file handle and must be closed on every exit path.
func (s *HistoryStore) Open(ctx context.Context, locator string) (port.HistoryIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(locator)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, locator)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", repository.ErrPermissionDenied, locator)
		default:
			return nil, fmt.Errorf("open history %s: %w", locator, err)
		}
	}

	return &lineIterator{
		locator: locator,
		file:    f,
		scanner: bufio.NewScanner(f),
	}, nil
}

// ReadAll collects the whole history in one pass. Convenience for callers
// that want the full list rather than a lazy scan.
func (s *HistoryStore) ReadAll(ctx context.Context, locator string) ([]domain.Fingerprint, error) {
	it, err := s.Open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []domain.Fingerprint
	for {
		fp, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, fp)
	}
}

type lineIterator struct {
	locator string
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// Next returns the next non-blank line's fingerprint.
func (it *lineIterator) Next(ctx context.Context) (domain.Fingerprint, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		if !it.scanner.Scan() {
			if err := it.scanner.Err(); err != nil {
				return nil, false, fmt.Errorf("read history %s: %w", it.locator, err)
			}
			return nil, false, nil
		}
		it.line++

		text := strings.TrimSpace(it.scanner.Text())
		if text == "" {
			continue
		}

		fp, err := domain.ParseFingerprint(text)
		if err != nil {
			return nil, false, &repository.ParseError{Locator: it.locator, Line: it.line, Err: err}
		}
		return fp, true, nil
	}
}

// Close releases the underlying file handle.
func (it *lineIterator) Close() error {
	return it.file.Close()
}
