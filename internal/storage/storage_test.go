/*
Package storage provides tests for the SQLite store.
*/
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewSQLiteStore verifies construction without a path disables the store.
func TestNewSQLiteStore(t *testing.T) {
	store := NewSQLiteStore("", nil)
	if store == nil {
		t.Fatal("NewSQLiteStore returned nil")
	}
	if store.Enabled() {
		t.Error("store without a path should be disabled")
	}
	if err := store.Init(); err != nil {
		t.Errorf("Init on disabled store should be a no-op, got: %v", err)
	}
}

// TestInit verifies database initialization and schema creation.
func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store := NewSQLiteStore(dbPath, nil)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file not created")
	}

	version, err := store.getCurrentMigrationVersion()
	if err != nil {
		t.Fatalf("getCurrentMigrationVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("Expected migration version 2, got %d", version)
	}
}

// TestMigrationsIdempotent verifies reopening does not rerun migrations.
func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := OpenSQLite(dbPath, nil)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(dbPath, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()
}

// TestRecordActivity verifies recording and reading back activity events.
func TestRecordActivity(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	event := ActivityEvent{
		Action:      ActionPosted,
		Tone:        "Casual",
		PostID:      "post-1",
		ContextHash: HashContext("some post"),
		Timestamp:   time.Now(),
		Rating:      4,
	}
	if err := store.RecordActivity(event); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if err := store.RecordActivity(ActivityEvent{Action: ActionGenerated, Tone: "Witty", Timestamp: time.Now()}); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	history, err := store.GetActivityHistory("Casual", time.Now().Add(-1*time.Hour))
	if err != nil {
		t.Fatalf("GetActivityHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(history))
	}
	if history[0].Action != ActionPosted || history[0].PostID != "post-1" || history[0].Rating != 4 {
		t.Errorf("Unexpected event: %+v", history[0])
	}
}

// TestClearAndCleanup verifies old and all events can be removed.
func TestClearAndCleanup(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	old := ActivityEvent{Action: ActionGenerated, Tone: "Casual", Timestamp: time.Now().Add(-100 * 24 * time.Hour)}
	recent := ActivityEvent{Action: ActionGenerated, Tone: "Casual", Timestamp: time.Now()}
	for _, e := range []ActivityEvent{old, recent} {
		if err := store.RecordActivity(e); err != nil {
			t.Fatalf("RecordActivity failed: %v", err)
		}
	}

	if err := store.Cleanup(90 * 24 * time.Hour); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	history, _ := store.GetActivityHistory("Casual", time.Time{})
	if len(history) != 1 {
		t.Errorf("Expected 1 event after cleanup, got %d", len(history))
	}

	if err := store.ClearActivity(); err != nil {
		t.Fatalf("ClearActivity failed: %v", err)
	}
	history, _ = store.GetActivityHistory("Casual", time.Time{})
	if len(history) != 0 {
		t.Errorf("Expected no events after clear, got %d", len(history))
	}
}

// TestHashContext verifies hashing consistency.
func TestHashContext(t *testing.T) {
	text := "test post for hashing"

	hash1 := HashContext(text)
	hash2 := HashContext(text)

	if hash1 != hash2 {
		t.Error("HashContext produced inconsistent results")
	}
	if len(hash1) != 64 { // SHA256 hex = 64 chars
		t.Errorf("Expected hash length 64, got %d", len(hash1))
	}
	if HashContext("") != "" {
		t.Error("Expected empty hash for empty text")
	}
}

// TestGracefulDegradation verifies behavior when the DB cannot be created.
func TestGracefulDegradation(t *testing.T) {
	// A regular file in the parent position makes MkdirAll fail even as root.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewSQLiteStore(filepath.Join(blocker, "sub", "test.db"), nil)

	if err := store.Init(); err == nil {
		t.Fatal("Expected Init to fail")
	}

	// Activity operations degrade to no-ops
	if err := store.RecordActivity(ActivityEvent{Tone: "test", Timestamp: time.Now()}); err != nil {
		t.Errorf("RecordActivity should return nil on disabled storage, got: %v", err)
	}

	history, err := store.GetActivityHistory("test", time.Now())
	if err != nil {
		t.Errorf("GetActivityHistory should not error on disabled storage, got: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history on disabled storage, got %d events", len(history))
	}

	// KV operations refuse instead of dropping writes
	if err := store.Set(context.Background(), "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from Set, got: %v", err)
	}
}
