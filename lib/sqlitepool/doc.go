// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens the SQLite database hearth keeps profiles
// and layout revisions in.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool and applies one set
// of pragmas to every connection. Callers [Pool.Take] a connection,
// run statements with sqlitex, and [Pool.Put] it back. A connection
// must not be shared between goroutines.
//
// # Pragmas
//
//   - journal_mode=WAL, so the designer can read a profile while the
//     CLI writes another.
//   - synchronous=FULL. Wall displays lose power without warning, and
//     a saved layout must survive that.
//   - busy_timeout=5000, waiting for the write lock instead of failing
//     with SQLITE_BUSY.
//   - foreign_keys=ON.
//   - temp_store=MEMORY.
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   filepath.Join(root, "hearth.db"),
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
package sqlitepool
