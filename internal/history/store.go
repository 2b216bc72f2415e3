// Package history keeps a SQLite journal of line-range replacements.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS replacements (
	id               TEXT PRIMARY KEY,
	target_path      TEXT NOT NULL,
	replacement_path TEXT NOT NULL,
	start_line       INTEGER NOT NULL,
	end_line         INTEGER NOT NULL,
	lines_before     INTEGER NOT NULL,
	lines_after      INTEGER NOT NULL,
	truncated        BOOLEAN NOT NULL DEFAULT 0,
	created_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_replacements_created_at ON replacements(created_at);
`

// Record is one journaled replacement.
type Record struct {
	ID              string
	TargetPath      string
	ReplacementPath string
	StartLine       int
	EndLine         int
	LinesBefore     int
	LinesAfter      int
	Truncated       bool
	CreatedAt       time.Time
}

// Store manages the SQLite replacement journal
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the journal at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry retries stmt with exponential backoff while SQLite reports
// the database as locked.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add stores rec, filling in ID and CreatedAt when they are empty.
func (s *Store) Add(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO replacements
		(id, target_path, replacement_path, start_line, end_line, lines_before, lines_after, truncated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.TargetPath,
		rec.ReplacementPath,
		rec.StartLine,
		rec.EndLine,
		rec.LinesBefore,
		rec.LinesAfter,
		rec.Truncated,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert replacement: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT id, target_path, replacement_path, start_line, end_line,
			lines_before, lines_after, truncated, created_at
		FROM replacements
		ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query replacements: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(
			&rec.ID,
			&rec.TargetPath,
			&rec.ReplacementPath,
			&rec.StartLine,
			&rec.EndLine,
			&rec.LinesBefore,
			&rec.LinesAfter,
			&rec.Truncated,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan replacement: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replacements: %w", err)
	}
	return records, nil
}

// Summary renders rec as a single history line.
func (rec *Record) Summary() string {
	line := fmt.Sprintf("%s  %s  %s lines %d-%d (%d -> %d lines)",
		rec.ID,
		rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		rec.TargetPath,
		rec.StartLine,
		rec.EndLine,
		rec.LinesBefore,
		rec.LinesAfter,
	)
	if rec.Truncated {
		line += " [truncated]"
	}
	return line
}
