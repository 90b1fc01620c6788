// Package settings persists per-widget settings in SQLite so widget state
// survives host restarts.
package settings

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a widget/key pair has no stored value.
var ErrNotFound = errors.New("setting not found")

const schema = `
CREATE TABLE IF NOT EXISTS widget_settings (
	widget_id  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (widget_id, key)
);
`

// Store is a settings database. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the settings database at path. WAL keeps
// readers from blocking the writer; the busy timeout covers writer handoff.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the stored value for one widget/key pair.
func (s *Store) Get(widgetID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM widget_settings WHERE widget_id = ? AND key = ?`,
		widgetID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s/%s: %w", widgetID, key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s/%s: %w", widgetID, key, err)
	}
	return value, nil
}

// Set stores or replaces a value.
func (s *Store) Set(widgetID, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO widget_settings (widget_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (widget_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		widgetID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s/%s: %w", widgetID, key, err)
	}
	return nil
}

// All returns every setting stored for one widget.
func (s *Store) All(widgetID string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT key, value FROM widget_settings WHERE widget_id = ?`, widgetID)
	if err != nil {
		return nil, fmt.Errorf("list settings for %s: %w", widgetID, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("list settings for %s: %w", widgetID, err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Delete removes one setting. Deleting an absent key is not an error.
func (s *Store) Delete(widgetID, key string) error {
	_, err := s.db.Exec(
		`DELETE FROM widget_settings WHERE widget_id = ? AND key = ?`, widgetID, key)
	if err != nil {
		return fmt.Errorf("delete setting %s/%s: %w", widgetID, key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
