package postgres

import (
	"context"
	"fmt"
	"strings"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/core/port"
	"github.com/arklim/credcheck/internal/repository"
)

// pgQuerier is the slice of the pgx pool API this read-only store needs.
// Both *pgxpool.Pool and pgxmock satisfy it.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// HistoryStore reads fingerprints from the credcheck.password_history table.
// The locator selects a namespace; a namespace with no rows is an empty
// history, not a missing one.
type HistoryStore struct {
	exec    pgQuerier
	builder squirrel.StatementBuilderType
}

// NewHistoryStore constructs a store backed by any executor satisfying pgQuerier.
func NewHistoryStore(exec pgQuerier) *HistoryStore {
	return &HistoryStore{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Open runs the namespace query and returns a row-backed iterator.
func (s *HistoryStore) Open(ctx context.Context, locator string) (port.HistoryIterator, error) {
	if s == nil || s.exec == nil {
		return nil, fmt.Errorf("postgres history store not configured")
	}

	query, args, err := s.builder.
		Select("fingerprint").
		From("credcheck.password_history").
		Where(squirrel.Eq{"namespace": locator}).
		OrderBy("recorded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := s.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history %s: %w", locator, err)
	}

	return &rowIterator{locator: locator, rows: rows}, nil
}

type rowIterator struct {
	locator string
	rows    pgx.Rows
	seen    int
}

// Next scans the next fingerprint row.
func (it *rowIterator) Next(ctx context.Context) (domain.Fingerprint, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return nil, false, fmt.Errorf("read history %s: %w", it.locator, err)
		}
		return nil, false, nil
	}
	it.seen++

	var value string
	if err := it.rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan history %s: %w", it.locator, err)
	}

	fp, err := domain.ParseFingerprint(strings.TrimSpace(value))
	if err != nil {
		return nil, false, &repository.ParseError{Locator: it.locator, Line: it.seen, Err: err}
	}
	return fp, true, nil
}

// Close releases the underlying rows.
func (it *rowIterator) Close() error {
	it.rows.Close()
	return nil
}
