// Package store persists summarization history and user preferences in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/divyamb08/multilingual-summarizer/internal/models"
)

// DefaultMaxEntries is the history cap; older entries are pruned.
const DefaultMaxEntries = 20

const preferencesKey = "preferences"

// Store is the SQLite-backed history/preferences store.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens or creates the database at dbPath and initializes the schema.
// Parent directories are created if they do not exist. maxEntries caps the
// history; non-positive values use DefaultMaxEntries.
func Open(dbPath string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		source_language TEXT,
		target_language TEXT NOT NULL,
		summary_length TEXT NOT NULL,
		content_preview TEXT,
		summary TEXT NOT NULL,
		source_type TEXT,
		file_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_date ON history(date);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// AddEntry records one summarization, assigning an ID and timestamp when
// unset, and prunes entries beyond the cap (oldest first).
func (s *Store) AddEntry(ctx context.Context, e *models.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id, date, source_language, target_language, summary_length,
		                      content_preview, summary, source_type, file_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.SourceLanguage, e.TargetLanguage, string(e.SummaryLength),
		e.ContentPreview, e.Summary, e.SourceType, e.FileName,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN
		   (SELECT id FROM history ORDER BY date DESC, id LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// ListEntries returns history entries newest first.
func (s *Store) ListEntries(ctx context.Context) ([]*models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, source_language, target_language, summary_length,
		        content_preview, summary, source_type, file_name
		 FROM history ORDER BY date DESC, id LIMIT ?`, s.maxEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		var e models.HistoryEntry
		var length string
		if err := rows.Scan(&e.ID, &e.Date, &e.SourceLanguage, &e.TargetLanguage,
			&length, &e.ContentPreview, &e.Summary, &e.SourceType, &e.FileName); err != nil {
			return nil, err
		}
		e.SummaryLength = models.SummaryLength(length)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes one history entry by ID.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("history entry not found: %s", id)
	}
	return nil
}

// ClearEntries removes all history entries.
func (s *Store) ClearEntries(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// Preferences returns the stored preferences, or zero-value defaults when
// none have been saved yet.
func (s *Store) Preferences(ctx context.Context) (*models.Preferences, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, preferencesKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return &models.Preferences{}, nil
	}
	if err != nil {
		return nil, err
	}
	var prefs models.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences upserts the preferences.
func (s *Store) SavePreferences(ctx context.Context, prefs *models.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		preferencesKey, string(raw))
	return err
}
