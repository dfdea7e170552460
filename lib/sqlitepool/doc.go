// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens SQLite connection pools with the pragmas
// the RifleAxis backend depends on: WAL journaling for concurrent
// readers, NORMAL synchronous, a busy timeout, and foreign key
// enforcement (the loadout and ballistic tables cascade through
// rifles.id, so foreign_keys must be ON on every connection).
//
// Usage:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   "/var/lib/rifleaxis/rifleaxis.db",
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//
// Callers take a connection per operation and return it when done:
//
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
//
// The pool is safe for concurrent use; individual connections are not.
package sqlitepool
