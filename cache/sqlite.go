package cache

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/multierr"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"bylaws/layout"
)

const schema = `CREATE TABLE IF NOT EXISTS layouts (
	fingerprint TEXT PRIMARY KEY,
	created     INTEGER NOT NULL,
	payload     BLOB NOT NULL
)`

// SQLite is persistent store shared between runs.
type SQLite struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenSQLite opens (creating when necessary) cache database.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open cache database: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		return nil, multierr.Append(fmt.Errorf("unable to prepare cache database: %w", err), conn.Close())
	}
	return &SQLite{conn: conn}, nil
}

// Get implements Store.
func (s *SQLite) Get(k Key) (*layout.Layout, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT payload FROM layouts WHERE fingerprint = ?`,
		&sqlitex.ExecOptions{
			Args: []any{k.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				data, err = io.ReadAll(stmt.ColumnReader(0))
				found = true
				return err
			},
		})
	if err != nil {
		return nil, false, fmt.Errorf("unable to read cached layout: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	l := &layout.Layout{}
	if err := Unmarshal(data, l); err != nil {
		return nil, false, fmt.Errorf("unable to decode cached layout: %w", err)
	}
	return l, true, nil
}

// Put implements Store.
func (s *SQLite) Put(k Key, l *layout.Layout) error {
	data, err := Marshal(l)
	if err != nil {
		return fmt.Errorf("unable to encode layout: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = sqlitex.Execute(s.conn, `INSERT OR REPLACE INTO layouts (fingerprint, created, payload) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{k.String(), time.Now().Unix(), data}})
	if err != nil {
		return fmt.Errorf("unable to store layout: %w", err)
	}
	return nil
}

// Prune removes entries created before given time.
func (s *SQLite) Prune(before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.Execute(s.conn, `DELETE FROM layouts WHERE created < ?`,
		&sqlitex.ExecOptions{Args: []any{before.Unix()}})
	if err != nil {
		return 0, fmt.Errorf("unable to prune layout cache: %w", err)
	}
	return s.conn.Changes(), nil
}

// Close closes database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.Close()
}
