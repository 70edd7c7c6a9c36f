// Package workspace persists conversion results and per-article error logs
// in a small sqlite database, so batch runs can be inspected after the fact.
package workspace

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id   TEXT PRIMARY KEY,
	json BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS errors (
	id    TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS errors_id ON errors(id);
`

// Workspace is a keyed JSON store with an error log, one row per article.
// Not safe for concurrent use, the conversion pipeline is sequential.
type Workspace struct {
	conn *sqlite.Conn
}

// Open creates or opens the workspace database. An empty path opens an
// in-memory database, which tests rely on.
func Open(path string) (*Workspace, error) {
	if path == "" {
		path = ":memory:"
	}
	conn, err := sqlite.OpenConn(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workspace database: %w", err)
	}
	if err := sqlitex.ExecScript(conn, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to initialize workspace schema: %w", err)
	}
	return &Workspace{conn: conn}, nil
}

func (w *Workspace) Close() error {
	return w.conn.Close()
}

// WriteJSON stores the produced document for an article, replacing any
// previous run.
func (w *Workspace) WriteJSON(id string, data []byte) error {
	return sqlitex.Execute(w.conn,
		`INSERT INTO articles (id, json) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET json = excluded.json`,
		&sqlitex.ExecOptions{Args: []any{id, data}})
}

// GetJSON returns the stored document for an article, or nil when the
// article has not been converted.
func (w *Workspace) GetJSON(id string) ([]byte, error) {
	var data []byte
	err := sqlitex.Execute(w.conn,
		`SELECT json FROM articles WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, data)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Error is one logged conversion problem.
type Error struct {
	Key   string
	Value string
}

// LogError records a non-fatal conversion problem for an article.
func (w *Workspace) LogError(id, key, value string) error {
	return sqlitex.Execute(w.conn,
		`INSERT INTO errors (id, key, value) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{id, key, value}})
}

// GetErrors returns the logged problems for an article in insertion order.
func (w *Workspace) GetErrors(id string) ([]Error, error) {
	var out []Error
	err := sqlitex.Execute(w.conn,
		`SELECT key, value FROM errors WHERE id = ? ORDER BY rowid`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				out = append(out, Error{
					Key:   stmt.ColumnText(0),
					Value: stmt.ColumnText(1),
				})
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}
