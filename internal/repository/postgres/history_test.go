package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/credcheck/internal/core/domain"
	"github.com/arklim/credcheck/internal/repository"
)

func TestHistoryStore_Open(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	store := NewHistoryStore(mock)

	rows := pgxmock.NewRows([]string{"fingerprint"}).
		AddRow("85").
		AddRow("deadbeef")

	mock.ExpectQuery(`SELECT fingerprint FROM credcheck\.password_history`).
		WithArgs("caleb").
		WillReturnRows(rows)

	ctx := context.Background()
	it, err := store.Open(ctx, "caleb")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer it.Close()

	first, ok, err := it.Next(ctx)
	if err != nil || !ok {
		t.Fatalf("expected first row, got ok=%v err=%v", ok, err)
	}
	if !first.Equal(domain.LegacyFingerprint(85)) {
		t.Fatalf("expected legacy fingerprint 85, got %s", first.Hex())
	}

	second, ok, err := it.Next(ctx)
	if err != nil || !ok {
		t.Fatalf("expected second row, got ok=%v err=%v", ok, err)
	}
	if second.Hex() != "deadbeef" {
		t.Fatalf("expected deadbeef, got %s", second.Hex())
	}

	if _, ok, err := it.Next(ctx); ok || err != nil {
		t.Fatalf("expected exhausted iterator, got ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHistoryStore_EmptyNamespace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	store := NewHistoryStore(mock)

	mock.ExpectQuery(`SELECT fingerprint FROM credcheck\.password_history`).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"fingerprint"}))

	ctx := context.Background()
	it, err := store.Open(ctx, "nobody")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer it.Close()

	if _, ok, err := it.Next(ctx); ok || err != nil {
		t.Fatalf("expected empty iteration, got ok=%v err=%v", ok, err)
	}
}

func TestHistoryStore_MalformedRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	store := NewHistoryStore(mock)

	rows := pgxmock.NewRows([]string{"fingerprint"}).AddRow("not-a-fingerprint")
	mock.ExpectQuery(`SELECT fingerprint FROM credcheck\.password_history`).
		WithArgs("caleb").
		WillReturnRows(rows)

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
