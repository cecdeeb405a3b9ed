// Package shortener implements the URL shortener service: short-code
// generation, a SQLite-backed link store with expiry, and the HTTP
// front end.
package shortener

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a short code does not exist or has
// expired.
var ErrNotFound = errors.New("shortener: code not found")

// ErrCodeTaken is returned by Put when the code maps to a live link.
var ErrCodeTaken = errors.New("shortener: code already in use")

// DefaultTTL is how long links stay valid when the store is built with
// a non-positive TTL.
const DefaultTTL = time.Hour

// Store persists short-code → URL mappings with per-link expiry.
// Expired rows are invisible to readers and purged lazily.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// NewStore opens (creating if needed) the link database under dataDir
// and runs migrations. Links expire after ttl; non-positive ttl falls
// back to DefaultTTL.
func NewStore(dataDir string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("shortener: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "links.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("shortener: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("shortener: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("shortener: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS links (
			code       TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			expires_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_links_expires ON links(expires_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put stores a code → URL mapping with the store's TTL. A code whose
// previous link has expired is displaced; a live code returns
// ErrCodeTaken so callers can regenerate. The check and the insert are
// one statement, so Put is the collision authority.
func (s *Store) Put(code, url, userID string) error {
	return s.putAt(code, url, userID, time.Now().Add(s.ttl))
}

func (s *Store) putAt(code, url, userID string, expiresAt time.Time) error {
	res, err := s.db.Exec(
		`INSERT INTO links (code, url, user_id, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
			url        = excluded.url,
			user_id    = excluded.user_id,
			created_at = datetime('now'),
			expires_at = excluded.expires_at
		 WHERE links.expires_at <= ?`,
		code, url, userID, expiresAt.UnixMilli(), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("shortener: store link: %w", err)
	}
	// The conflict clause skips live rows, leaving zero rows changed.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCodeTaken
	}
	return nil
}

// Get resolves a code to its original URL. Expired or unknown codes
// return ErrNotFound.
func (s *Store) Get(code string) (string, error) {
	now := time.Now().UnixMilli()

	var url string
	err := s.db.QueryRow(
		`SELECT url FROM links WHERE code = ? AND expires_at > ?`,
		code, now,
	).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("shortener: lookup link: %w", err)
	}
	return url, nil
}

// Purge deletes expired rows and returns how many were removed. The
// HTTP layer runs it on lookup misses and at shutdown; correctness
// never depends on it since Get filters by expiry and Put displaces
// expired rows.
func (s *Store) Purge() (int64, error) {
	now := time.Now().UnixMilli()
	res, err := s.db.Exec(`DELETE FROM links WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("shortener: purge: %w", err)
	}
	return res.RowsAffected()
}
