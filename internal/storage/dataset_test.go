package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/claude/liftium/internal/seed"
	"github.com/claude/liftium/internal/tracker"
)

// testDB connects to LIFTIUM_TEST_DSN and applies migrations, or skips the
// test when the variable is unset.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("LIFTIUM_TEST_DSN")
	if dsn == "" {
		t.Skip("LIFTIUM_TEST_DSN not set")
	}
	_, file, _, _ := runtime.Caller(0)
	migrations := filepath.Join(filepath.Dir(file), "..", "..", "migrations")
	if err := RunMigrations(dsn, migrations); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	db, err := New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// TestInsertAndLoadDataset verifies the sample data survives a round trip
// through Postgres and yields the same derived progress.
func TestInsertAndLoadDataset(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	ds := seed.Dataset(now)

	if _, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, seed.UserID); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	n, err := db.InsertDataset(ctx, ds)
	if err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}
	if want := int64(1 + 1 + 4 + 8 + 2 + 15); n != want {
		t.Errorf("inserted = %d, want %d", n, want)
	}

	// Second insert is a no-op.
	if n, err := db.InsertDataset(ctx, ds); err != nil || n != 0 {
		t.Errorf("second InsertDataset = %d, %v; want 0, nil", n, err)
	}

	got, err := db.LoadDataset(ctx, seed.UserID)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("loaded dataset invalid: %v", err)
	}
	if len(got.Sets) != 15 || len(got.Exercises) != 8 {
		t.Errorf("loaded %d sets, %d exercises; want 15, 8", len(got.Sets), len(got.Exercises))
	}

	p, ok := tracker.New(got, seed.UserID).ExerciseProgress(seed.BarbellRowsID)
	if !ok || p.TotalVolume != 2590 {
		t.Errorf("rows progress = %+v, %v; want volume 2590", p, ok)
	}

	id, ok, err := db.UserIDByEmail(ctx, "ISAAC@example.com")
	if err != nil || !ok || id != seed.UserID {
		t.Errorf("UserIDByEmail = %q, %v, %v", id, ok, err)
	}

	stats, err := db.GetDataStats(ctx, seed.UserID)
	if err != nil {
		t.Fatalf("GetDataStats: %v", err)
	}
	if stats.TotalSessions != 2 || stats.TotalSets != 15 {
		t.Errorf("stats = %+v, want 2 sessions, 15 sets", stats)
	}
}
