package transcriptcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"scribe/internal/result"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transcripts (
    key        TEXT PRIMARY KEY,
    backend    TEXT NOT NULL,
    model      TEXT NOT NULL,
    language   TEXT NOT NULL,
    document   TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Store manages transcript persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the transcript database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Key derives the cache key for an audio file and the run parameters that
// shape its transcript. The audio content is hashed so a re-encoded or
// replaced file never reuses a stale entry.
func Key(audioPath, backend, model, language, policy string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hash audio: %w", err)
	}
	fmt.Fprintf(hasher, "|%s|%s|%s|%s", backend, model, language, policy)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Lookup returns the cached document for key, or ok=false when absent.
func (s *Store) Lookup(ctx context.Context, key string) (result.Document, bool, error) {
	var doc result.Document
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM transcripts WHERE key = ?", key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, fmt.Errorf("lookup transcript: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return doc, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	return doc, true, nil
}

// Store saves a successful document under key, replacing any previous entry.
func (s *Store) Store(ctx context.Context, key, backend, model, language string, doc result.Document) error {
	if doc.Status != result.StatusSuccess {
		return fmt.Errorf("refusing to cache %q document", doc.Status)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (key, backend, model, language, document, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET
             backend = excluded.backend,
             model = excluded.model,
             language = excluded.language,
             document = excluded.document,
             created_at = excluded.created_at`,
		key, backend, model, language, string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}
