// Package cache is the client's durable local cache: a single SQLite
// key/value table holding the last content snapshot and the current session.
// The cache is a best-effort backup of the last known-good state, never an
// authoritative store.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// Fixed cache keys.
const (
	ContentKey = "portfolio.content"
	SessionKey = "portfolio.session"
)

// Cache wraps a SQLite database holding JSON values by key.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the cache database at path, creating its directory
// if needed. Use ":memory:" for a throwaway cache.
func Open(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cache.Open: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache.Open: %w", err)
	}
	// One connection: an in-memory database is per connection, and the CLI
	// never needs concurrent writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache.Open: %w", err)
	}
	c := &Cache{db: db, now: time.Now}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache.Open: %w", err)
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// Put stores v as JSON under key, overwriting any previous value.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache.Put %s: %w", key, err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(b), c.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("cache.Put %s: %w", key, err)
	}
	return nil
}

// Get decodes the value stored under key into dst and reports whether the
// key was present. A present but undecodable value is an error.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("cache.Get %s: corrupt entry: %w", key, err)
	}
	return true, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("cache.Delete %s: %w", key, err)
	}
	return nil
}

// SavedAt reports when key was last written.
func (c *Cache) SavedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT updated_at FROM entries WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache.SavedAt %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache.SavedAt %s: %w", key, err)
	}
	return t, true, nil
}

// SaveSnapshot overwrites the content snapshot.
func (c *Cache) SaveSnapshot(ctx context.Context, s domain.ContentSnapshot) error {
	return c.Put(ctx, ContentKey, s)
}

// Snapshot returns the last saved content snapshot, if any.
func (c *Cache) Snapshot(ctx context.Context) (domain.ContentSnapshot, bool, error) {
	var s domain.ContentSnapshot
	ok, err := c.Get(ctx, ContentKey, &s)
	return s, ok, err
}

// SaveSession stores the signed-in user.
func (c *Cache) SaveSession(ctx context.Context, u domain.AdminUser) error {
	return c.Put(ctx, SessionKey, u)
}

// Session returns the stored user, or nil when nobody is signed in.
func (c *Cache) Session(ctx context.Context) (*domain.AdminUser, error) {
	var u domain.AdminUser
	ok, err := c.Get(ctx, SessionKey, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// ClearSession forgets the signed-in user.
func (c *Cache) ClearSession(ctx context.Context) error {
	return c.Delete(ctx, SessionKey)
}
