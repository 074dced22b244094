package asset

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// DB serves module assets from a packed SQLite bundle produced by DBWriter
// (the `requirekit pack` command). The full path set is loaded once, on the
// first existence check, so resolution probing stays in memory; only body
// reads query the database.
type DB struct {
	db *sql.DB

	once    sync.Once
	paths   map[string]struct{}
	loadErr error
}

// OpenDB opens a packed asset database.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open asset db %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (d *DB) loadPaths() {
	d.once.Do(func() {
		rows, err := d.db.Query("SELECT path FROM assets")
		if err != nil {
			d.loadErr = fmt.Errorf("load asset index: %w", err)
			return
		}
		defer func() { _ = rows.Close() }()

		d.paths = make(map[string]struct{})
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				d.loadErr = fmt.Errorf("scan asset path: %w", err)
				return
			}
			d.paths[p] = struct{}{}
		}
		d.loadErr = rows.Err()
	})
}

// Exists implements api.AssetStore.
func (d *DB) Exists(path string) bool {
	d.loadPaths()
	if d.loadErr != nil {
		return false
	}
	_, ok := d.paths[path]
	return ok
}

// ReadText implements api.AssetStore.
func (d *DB) ReadText(path string) (string, error) {
	var body string
	err := d.db.QueryRow("SELECT body FROM assets WHERE path = ?", path).Scan(&body)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("asset %s not found", path)
	}
	if err != nil {
		return "", fmt.Errorf("read asset %s: %w", path, err)
	}
	return body, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// DBWriter packs assets into the SQLite bundle format read by DB.
type DBWriter struct {
	db *sql.DB
	tx *sql.Tx
	st *sql.Stmt
}

// NewDBWriter creates the bundle file, initializes its schema and starts the
// write transaction.
func NewDBWriter(path string) (*DBWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open asset db %s: %w", path, err)
	}
	// bulk-insert tuning, same trade-off as a one-shot build artifact
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS assets (
		path TEXT PRIMARY KEY,
		body TEXT NOT NULL
	) WITHOUT ROWID;
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create asset schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	st, err := tx.Prepare("INSERT OR REPLACE INTO assets (path, body) VALUES (?, ?)")
	if err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, err
	}
	return &DBWriter{db: db, tx: tx, st: st}, nil
}

// Add stores one asset under its virtual path.
func (w *DBWriter) Add(path, body string) error {
	if _, err := w.st.Exec(path, body); err != nil {
		return fmt.Errorf("pack asset %s: %w", path, err)
	}
	return nil
}

// Close commits the pack transaction and closes the database.
func (w *DBWriter) Close() error {
	_ = w.st.Close()
	if err := w.tx.Commit(); err != nil {
		_ = w.db.Close()
		return fmt.Errorf("commit pack: %w", err)
	}
	return w.db.Close()
}
