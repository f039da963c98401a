// Package store implements the shared entity store: namespaced, versioned
// key/value persistence of serialized collections over SQLite, with change
// notification across independent contexts (processes or store handles)
// sharing the same database file.
//
// Collections are rewritten whole on every mutation, so two contexts
// writing concurrently would otherwise silently lose one side's update
// (last write wins over the whole collection). Every write is therefore
// a compare-and-swap on the collection's version, and Update retries the
// read-modify-write on conflict; mutations still rewrite the whole
// affected collection.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/elevatify/elevatify/internal/common"
	"github.com/elevatify/elevatify/internal/config"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/notify"
	"github.com/elevatify/elevatify/internal/store/migrations"
)

// Versioned is a stored value together with its collection version.
// A missing key reads as {Value: nil, Version: 0}.
type Versioned struct {
	Value   []byte
	Version int64
}

// Store is one context's handle on the shared database. Each handle has a
// unique origin id so the watcher can tell its own commits apart from
// other contexts' commits in the changelog.
type Store struct {
	db     *sql.DB
	origin string
	bus    *notify.Bus
	log    logging.Logger

	watchInterval time.Duration
	retryAttempts uint64

	// mu serializes changelog drains; checkpoint is the highest changelog
	// seq already delivered (or skipped as our own).
	mu         sync.Mutex
	checkpoint int64

	cancel context.CancelFunc
	done   chan struct{}
	closed atomic.Bool
}

// Open creates or opens the shared database at cfg.DatabasePath, applies
// pragmas and migrations, and starts the external-change watcher.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection per handle
	// also keeps `PRAGMA data_version` meaningful (it is per-connection and
	// only moves when a different connection commits).
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying pragmas: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	origin := uuid.NewString()
	s := &Store{
		db:            db,
		origin:        origin,
		bus:           notify.NewBus(),
		log:           log.With("store_origin", shortOrigin(origin)),
		watchInterval: cfg.WatchInterval,
		retryAttempts: cfg.RetryAttempts,
		done:          make(chan struct{}),
	}

	// History that predates this handle is not replayed; subscribers read
	// current state on startup.
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM changelog`).Scan(&s.checkpoint); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reading changelog checkpoint: %w", err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.watch(watchCtx)

	s.log.Info(ctx, "store opened", "path", cfg.DatabasePath, "watch_interval", cfg.WatchInterval)
	return s, nil
}

// Bus returns the unified change-notification bus for this handle. Local
// commits, commits observed from other contexts, and refresh pulses all
// arrive on the same subscriptions.
func (s *Store) Bus() *notify.Bus { return s.bus }

// Get reads one value. Missing keys return the zero Versioned and no
// error; corruption below the serialization layer is the repositories'
// concern and is handled there by substituting empty collections.
func (s *Store) Get(ctx context.Context, namespace, key string) (Versioned, error) {
	if s.closed.Load() {
		return Versioned{}, common.ErrStoreClosed
	}
	var v Versioned
	err := s.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv WHERE namespace = ? AND key = ?`,
		namespace, key).Scan(&v.Value, &v.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Versioned{}, nil
	}
	if err != nil {
		return Versioned{}, fmt.Errorf("reading %s/%s: %w", namespace, key, err)
	}
	return v, nil
}

// Close stops the watcher and closes the database. The bus stays usable
// but no further events are published.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.cancel()
	<-s.done
	return s.db.Close()
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = NORMAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func shortOrigin(origin string) string {
	if len(origin) > 8 {
		return origin[:8]
	}
	return origin
}
