package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Simplici0/printcost/internal/db"
)

func TestUpIsIdempotent(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 3; i++ {
		if err := Up(database, nil); err != nil {
			t.Fatalf("run migrations (iteration=%d): %v", i, err)
		}
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		t.Fatalf("query snapshots: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty snapshots table, got %d rows", count)
	}
}

func TestUpLogsThroughZap(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	if err := Up(database, zap.New(core)); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if logs.FilterLoggerName("migrations").Len() == 0 {
		t.Fatalf("expected goose progress to be logged")
	}
}
