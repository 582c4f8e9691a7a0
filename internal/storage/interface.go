/*
Package storage implements the durable key-value medium behind the settings
store, plus the SQLite activity history used by the learning system.

Four KV drivers are available: a JSON file (default), SQLite, Redis and
PostgreSQL. SQLite uses modernc.org/sqlite (a pure Go, CGo-free implementation).
The activity history degrades gracefully: if its database cannot be opened,
recording becomes a no-op. KV drivers never degrade silently, since losing a
write would lose user data.
*/
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned by KV.Get when the key has never been set.
	ErrNotFound = errors.New("storage: key not found")

	// ErrUnavailable is returned by KV operations on a store that failed to open.
	ErrUnavailable = errors.New("storage: unavailable")
)

// KV is a string key-value medium with whole-value replacement semantics.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key currently stored.
	Keys(ctx context.Context) ([]string, error)

	Close() error
}

// ActivityStore persists comment activity for the learning system.
type ActivityStore interface {
	// Init initializes the database and runs migrations.
	Init() error

	// RecordActivity records a single activity event.
	RecordActivity(event ActivityEvent) error

	// GetActivityHistory retrieves events for a tone since a given time.
	GetActivityHistory(tone string, since time.Time) ([]ActivityEvent, error)

	// ClearActivity deletes every recorded event.
	ClearActivity() error

	// Cleanup removes events older than the retention window.
	Cleanup(retention time.Duration) error

	Close() error
}

// SQLiteStore implements both KV and ActivityStore on one SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
	logger   *zap.Logger
}

var (
	_ KV            = (*SQLiteStore)(nil)
	_ ActivityStore = (*SQLiteStore)(nil)
)

// NewSQLiteStore creates a store for the database at dbPath. Nothing is
// opened until Init is called.
func NewSQLiteStore(dbPath string, logger *zap.Logger) *SQLiteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteStore{
		dbPath:  dbPath,
		enabled: dbPath != "",
		logger:  logger,
	}
}

// OpenSQLite creates and initializes a store, returning the init error.
func OpenSQLite(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	s := NewSQLiteStore(dbPath, logger)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init initializes the database and runs migrations.
//
// If initialization fails, the store is disabled: activity operations become
// no-ops and KV operations return ErrUnavailable.
func (s *SQLiteStore) Init() error {
	if s.dbPath == "" {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			s.logger.Warn("sqlite store disabled", zap.Error(initErr))
			return
		}
		// One writer at a time keeps SQLite away from SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			s.logger.Warn("sqlite store disabled", zap.Error(initErr))
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			s.logger.Warn("sqlite store disabled", zap.Error(initErr))
			return
		}
	})

	return initErr
}

// Enabled reports whether the database opened successfully.
func (s *SQLiteStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready()
}

// ready must be called with mu held.
func (s *SQLiteStore) ready() bool {
	return s.enabled && s.db != nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// HashContext creates a SHA256 hash of post text so history never stores it verbatim.
func HashContext(text string) string {
	if text == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
