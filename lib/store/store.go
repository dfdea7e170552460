// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
	"github.com/rifleaxis-foundation/rifleaxis/lib/sqlitepool"
)

// Errors returned by store methods.
var (
	// ErrNotFound means the row does not exist or is not owned by the
	// requesting user.
	ErrNotFound = errors.New("store: not found")

	// ErrEmailTaken means a user row with that email already exists.
	ErrEmailTaken = errors.New("store: email already registered")
)

// Store is the SQLite-backed persistence layer.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// Config holds the parameters for Open.
type Config struct {
	// Path is the filesystem path to the SQLite database file. The
	// parent directory must exist. Required.
	Path string

	// PoolSize is the number of connections in the pool. Defaults to
	// 4 if zero or negative.
	PoolSize int

	// Clock provides timestamps for created and updated columns.
	// Required.
	Clock clock.Clock

	// Logger receives operational messages. Required.
	Logger *slog.Logger
}

// Open opens the database, applies the schema, and returns a Store.
// The database file is created if it does not exist.
func Open(cfg Config) (*Store, error) {
	if cfg.Clock == nil {
		return nil, fmt.Errorf("store: Clock is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("store: Logger is required")
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: poolSize,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	store := &Store{pool: pool, clock: cfg.Clock, logger: cfg.Logger}
	if err := store.applySchema(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying connection pool. Blocks until all
// borrowed connections are returned.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Ping verifies that a connection can be taken and queried. Health
// checks use it to report database reachability.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	defer s.pool.Put(conn)

	if err := sqlitex.Execute(conn, `SELECT 1`, nil); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

func (s *Store) applySchema(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: applying schema: %w", err)
	}
	defer s.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schemaSQL, nil); err != nil {
		return fmt.Errorf("store: applying schema: %w", err)
	}
	return nil
}

// DeleteAllData removes every row from every table, keeping the
// schema. Deleting users cascades to everything they own; reset
// tokens are cleared explicitly to cover rows written while foreign
// keys were off.
func (s *Store) DeleteAllData(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: delete all data: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: delete all data: %w", err)
	}
	defer endTransaction(&err)

	for _, table := range []string{"users", "password_reset_tokens"} {
		err = sqlitex.Execute(conn, "DELETE FROM "+table, nil)
		if err != nil {
			return fmt.Errorf("store: delete all data: clearing %s: %w", table, err)
		}
	}
	return nil
}

// now returns the current time truncated to whole nanoseconds in UTC,
// the resolution stored in timestamp columns.
func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// timestamp converts a time to its stored integer form.
func timestamp(t time.Time) int64 {
	return t.UnixNano()
}

// fromTimestamp converts a stored integer back to a time.
func fromTimestamp(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// nullableTimestamp converts an optional time for an Args slice.
func nullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timestamp(*t)
}

// textOrNil converts an optional string for an Args slice.
func textOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// intOrNil converts an optional int for an Args slice.
func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

// floatOrNil converts an optional float for an Args slice.
func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// columnText reads a nullable TEXT column.
func columnText(stmt *sqlite.Stmt, col int) *string {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	value := stmt.ColumnText(col)
	return &value
}

// columnInt reads a nullable INTEGER column.
func columnInt(stmt *sqlite.Stmt, col int) *int {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	value := int(stmt.ColumnInt64(col))
	return &value
}

// columnFloat reads a nullable REAL column.
func columnFloat(stmt *sqlite.Stmt, col int) *float64 {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	value := stmt.ColumnFloat(col)
	return &value
}

// columnTime reads a nullable timestamp column.
func columnTime(stmt *sqlite.Stmt, col int) *time.Time {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	value := fromTimestamp(stmt.ColumnInt64(col))
	return &value
}

// columnJSON reads a nullable TEXT column holding a JSON document.
func columnJSON(stmt *sqlite.Stmt, col int) []byte {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	return []byte(stmt.ColumnText(col))
}

// jsonOrNil converts an optional raw JSON document for an Args slice.
func jsonOrNil(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
