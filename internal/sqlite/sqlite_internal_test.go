package sqlite

import (
	"testing"

	"github.com/vuna-de/be-exe/internal/testhelpers"
)

func TestNewDatabase(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	}()

	// The fixtures must leave both catalogs populated.
	for _, table := range []string{"exercises", "meals", "users"} {
		var count int
		if err = db.ReadOnly.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("expected %s to be seeded", table)
		}
	}

	// Fixtures are idempotent on restart.
	if _, err = db.ReadWrite.ExecContext(ctx, fixtures); err != nil {
		t.Fatalf("reapply fixtures: %v", err)
	}
}
