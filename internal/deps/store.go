package deps

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/girder/internal/filelock"
)

//go:embed schema.sql
var schemaSQL string

// Store persists the directories read during glob sessions into a SQLite
// database. Each Store owns one session, identified by a fresh UUID, so that
// consecutive invocations can be diffed against each other. A flock on a
// sibling lock file serializes initialization between concurrent girder
// processes sharing the same database.
type Store struct {
	db       *sql.DB
	lock     *filelock.FileLock
	mu       sync.Mutex
	session  string
	writeErr error
}

// NewStore opens (creating if needed) the database at dbPath and starts a
// session for the given root directory. Use ":memory:" for a private
// in-memory database in tests.
func NewStore(dbPath, root string) (*Store, error) {
	var lock *filelock.FileLock
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		lock = filelock.NewFileLock(dbPath + ".lock")
		if err := lock.Lock(); err != nil {
			return nil, err
		}
	}

	s, err := openStore(dbPath, root)
	if err != nil {
		if lock != nil {
			lock.Unlock()
		}
		return nil, err
	}
	s.lock = lock
	return s, nil
}

// openStore opens the database, applies pragmas and schema, and inserts the
// session row.
func openStore(dbPath, root string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining setup waits on locks instead of
	// failing with "database is locked".
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	session := uuid.NewString()
	if _, err := db.Exec("INSERT INTO sessions (id, root) VALUES (?, ?)", session, root); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Store{db: db, session: session}, nil
}

// Session returns the UUID of the session this store is recording into.
func (s *Store) Session() string {
	return s.session
}

// AddInput records one directory read. Write failures are remembered and
// surfaced by Close; the glob itself must not be aborted by a bad recorder.
func (s *Store) AddInput(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO inputs (session_id, path) VALUES (?, ?)",
		s.session, path)
	if err != nil && s.writeErr == nil {
		s.writeErr = fmt.Errorf("record input %s: %w", path, err)
	}
}

// Inputs returns the directories recorded for a session, sorted.
func (s *Store) Inputs(session string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT path FROM inputs WHERE session_id = ? ORDER BY path", session)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Close releases the database and lock, returning the first write error
// encountered during the session.
func (s *Store) Close() error {
	s.mu.Lock()
	werr := s.writeErr
	s.mu.Unlock()

	err := s.db.Close()
	if s.lock != nil {
		if uerr := s.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	if werr != nil {
		return werr
	}
	return err
}
