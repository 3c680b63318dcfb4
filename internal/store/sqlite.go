package store

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLite is a KV backed by a single-connection SQLite database. The tool
// is single-user and single-process, so one connection is enough; the
// store is not safe for concurrent use from multiple goroutines.
type SQLite struct {
	conn *sqlite.Conn
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the kv table exists. Use ":memory:" for tests.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite|sqlite.OpenCreate|sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("opening state database %q: %w", path, err)
	}

	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("preparing state schema: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var value []byte
	found := false

	err := sqlitex.Execute(s.conn, `SELECT value FROM kv WHERE key = ?;`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			value = []byte(stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}

	return value, found, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value;`,
		&sqlitex.ExecOptions{Args: []any{key, string(value)}},
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Update runs fn inside a savepoint. All writes made through the store by
// fn are committed together or rolled back together.
func (s *SQLite) Update(fn func(kv KV) error) (err error) {
	defer sqlitex.Save(s.conn)(&err)
	return fn(s)
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}
