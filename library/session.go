package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	_ "github.com/mattn/go-sqlite3"
)

// SessionStore holds the one durable piece of client state: the current
// authenticated session. It is the CLI analog of the browser's local
// storage: written on login, cleared on logout, read synchronously by the
// guards and by the gateway's token interceptor.
type SessionStore struct {
	db *sql.DB

	mu      sync.RWMutex
	current *Session
}

// OpenSessionStore opens (or creates) the state database at path, applies
// schema migrations and loads the persisted session, if any. A stored token
// that is a JWT past its expiry is discarded so the caller falls through to
// the login gate instead of collecting 401s.
func OpenSessionStore(path string) (*SessionStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrateState(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &SessionStore{db: db}
	if err := store.load(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error { return s.db.Close() }

const stateSchemaVersion = 1

func migrateState(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= stateSchemaVersion {
		return nil
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            subject_id TEXT NOT NULL,
            name TEXT NOT NULL,
            role TEXT NOT NULL,
            token TEXT NOT NULL,
            saved_at DATETIME NOT NULL
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt, stateSchemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

func (s *SessionStore) load() error {
	var sess Session
	err := s.db.QueryRow(`SELECT subject_id, name, role, token FROM session WHERE id=1`).
		Scan(&sess.SubjectID, &sess.Name, &sess.Role, &sess.Token)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if tokenExpired(sess.Token, time.Now()) {
		// Stale login; clear it rather than hand out a dead token.
		_, _ = s.db.Exec(`DELETE FROM session WHERE id=1`)
		return nil
	}

	s.current = &sess
	return nil
}

// Current returns the active session, or nil when nobody is logged in.
func (s *SessionStore) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login persists sess and makes it the current session.
func (s *SessionStore) Login(sess Session) error {
	if !sess.Role.IsValid() {
		return fmt.Errorf("unknown role %q", sess.Role)
	}
	_, err := s.db.Exec(`INSERT INTO session(id, subject_id, name, role, token, saved_at)
        VALUES(1, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            subject_id=excluded.subject_id, name=excluded.name,
            role=excluded.role, token=excluded.token, saved_at=excluded.saved_at`,
		sess.SubjectID, sess.Name, string(sess.Role), sess.Token, time.Now())
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted session.
func (s *SessionStore) Logout() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id=1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// tokenExpired reports whether token is a JWT whose exp claim has elapsed.
// Opaque (non-JWT) tokens are never considered expired here; the server
// remains the authority on their validity.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time)
}
