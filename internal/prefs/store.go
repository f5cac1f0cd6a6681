// Package prefs keeps the small amount of state the portal remembers between
// sessions: the storage consent flag, recently opened articles and the theme.
package prefs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	KeyConsent = "cookies_accepted"
	KeyVisited = "visited_news_ids"
	KeyTheme   = "theme"

	// MaxVisited caps the visited list; the oldest ids are evicted first.
	MaxVisited = 100
)

type backend interface {
	get(key string) (string, bool, error)
	set(key, value string) error
	remove(key string) error
	close() error
}

// Store is a best-effort key/value store. Every storage failure is logged and
// swallowed: reads come back empty and writes are dropped.
type Store struct {
	kv backend
}

// Open opens (creating if needed) the sqlite store at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{kv: &sqliteBackend{db: db}}, nil
}

// Unavailable returns a store that holds nothing, used when Open failed.
func Unavailable() *Store {
	return &Store{}
}

func (s *Store) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.close()
}

// Get returns the stored value or an empty string.
func (s *Store) Get(key string) string {
	if s.kv == nil {
		return ""
	}
	v, ok, err := s.kv.get(key)
	if err != nil {
		lgr.Printf("[WARN] reading preference %q: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Store) Set(key, value string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.set(key, value); err != nil {
		lgr.Printf("[WARN] writing preference %q: %v", key, err)
	}
}

func (s *Store) remove(key string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.remove(key); err != nil {
		lgr.Printf("[WARN] removing preference %q: %v", key, err)
	}
}

// Consented reports whether the user accepted local storage.
func (s *Store) Consented() bool {
	return s.Get(KeyConsent) == "true"
}

// Decided reports whether a consent value exists at all.
func (s *Store) Decided() bool {
	return s.Get(KeyConsent) != ""
}

func (s *Store) Accept() {
	s.Set(KeyConsent, "true")
}

// Revoke withdraws consent and deletes everything it was protecting.
func (s *Store) Revoke() {
	s.Set(KeyConsent, "false")
	s.remove(KeyVisited)
	s.remove(KeyTheme)
}

// VisitedIDs returns visited article ids, oldest first. Empty without consent.
func (s *Store) VisitedIDs() []string {
	if !s.Consented() {
		return nil
	}
	raw := s.Get(KeyVisited)
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		lgr.Printf("[WARN] parsing %s: %v", KeyVisited, err)
		return nil
	}
	return ids
}

// Visited reports whether id is in the visited list.
func (s *Store) Visited(id string) bool {
	for _, v := range s.VisitedIDs() {
		if v == id {
			return true
		}
	}
	return false
}

// AddVisited records id. No-op without consent or when already present.
func (s *Store) AddVisited(id string) {
	if !s.Consented() || id == "" {
		return
	}
	ids := s.VisitedIDs()
	for _, v := range ids {
		if v == id {
			return
		}
	}
	ids = append(ids, id)
	if len(ids) > MaxVisited {
		ids = ids[len(ids)-MaxVisited:]
	}
	data, err := json.Marshal(ids)
	if err != nil {
		lgr.Printf("[WARN] encoding %s: %v", KeyVisited, err)
		return
	}
	s.Set(KeyVisited, string(data))
}

// Theme returns the stored theme name. Empty without consent.
func (s *Store) Theme() string {
	if !s.Consented() {
		return ""
	}
	return s.Get(KeyTheme)
}

func (s *Store) SetTheme(name string) {
	if !s.Consented() {
		return
	}
	s.Set(KeyTheme, name)
}

type sqliteBackend struct {
	db *sqlx.DB
}

func (b *sqliteBackend) get(key string) (string, bool, error) {
	var value string
	err := b.db.Get(&value, "SELECT value FROM prefs WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *sqliteBackend) set(key, value string) error {
	_, err := b.db.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (b *sqliteBackend) remove(key string) error {
	_, err := b.db.Exec("DELETE FROM prefs WHERE key = ?", key)
	return err
}

func (b *sqliteBackend) close() error {
	return b.db.Close()
}
