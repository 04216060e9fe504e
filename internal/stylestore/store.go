// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stylestore persists saved citation styles, per-owner bookmarks,
// and per-style revision history in a SQLite database.
package stylestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/styleforge/pkg/types"
)

// ErrNotFound is returned when a style id does not exist in the store.
var ErrNotFound = errors.New("style not found")

// Record is a saved style with its storage metadata.
type Record struct {
	ID        string      `json:"id" yaml:"id"`
	Owner     string      `json:"owner" yaml:"owner"`
	Name      string      `json:"name" yaml:"name"`
	Public    bool        `json:"public" yaml:"public"`
	Style     types.Style `json:"style" yaml:"style"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" yaml:"updated_at"`
}

// Revision is one historical snapshot of a style. Every Save appends a
// new revision, so version 1 is the style as first created.
type Revision struct {
	Version int         `json:"version" yaml:"version"`
	Style   types.Style `json:"style" yaml:"style"`
	SavedAt time.Time   `json:"saved_at" yaml:"saved_at"`
}

// Store manages the styles SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the styles database at cfg.Path, creating
// parent directories and the schema as needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS styles (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			public INTEGER NOT NULL DEFAULT 0,
			style TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_styles_owner ON styles(owner)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			owner TEXT NOT NULL,
			style_id TEXT NOT NULL REFERENCES styles(id) ON DELETE CASCADE,
			created_at TEXT NOT NULL,
			PRIMARY KEY (owner, style_id)
		)`,
		`CREATE TABLE IF NOT EXISTS revisions (
			style_id TEXT NOT NULL REFERENCES styles(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			style TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			PRIMARY KEY (style_id, version)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts or updates a style and appends a revision snapshot. A
// record with an empty ID is assigned a fresh UUID. The returned record
// carries the assigned ID and timestamps.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.UpdatedAt = now

	styleJSON, err := json.Marshal(rec.Style)
	if err != nil {
		return Record{}, fmt.Errorf("encoding style: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt string
	err = tx.QueryRowContext(ctx,
		`SELECT created_at FROM styles WHERE id = ?`, rec.ID,
	).Scan(&createdAt)
	switch {
	case err == sql.ErrNoRows:
		rec.CreatedAt = now
		_, err = tx.ExecContext(ctx,
			`INSERT INTO styles (id, owner, name, public, style, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Owner, rec.Name, boolInt(rec.Public), string(styleJSON),
			timeString(rec.CreatedAt), timeString(rec.UpdatedAt),
		)
		if err != nil {
			return Record{}, fmt.Errorf("inserting style: %w", err)
		}
	case err != nil:
		return Record{}, fmt.Errorf("checking existing style: %w", err)
	default:
		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return Record{}, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE styles SET owner=?, name=?, public=?, style=?, updated_at=? WHERE id=?`,
			rec.Owner, rec.Name, boolInt(rec.Public), string(styleJSON),
			timeString(rec.UpdatedAt), rec.ID,
		)
		if err != nil {
			return Record{}, fmt.Errorf("updating style: %w", err)
		}
	}

	// Append the revision snapshot.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (style_id, version, style, saved_at)
		 VALUES (?, (SELECT COALESCE(MAX(version), 0) + 1 FROM revisions WHERE style_id = ?), ?, ?)`,
		rec.ID, rec.ID, string(styleJSON), timeString(now),
	)
	if err != nil {
		return Record{}, fmt.Errorf("appending revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("committing style: %w", err)
	}
	return rec, nil
}

// Get returns the style with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, name, public, style, created_at, updated_at
		 FROM styles WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns all styles belonging to owner, newest first.
func (s *Store) List(ctx context.Context, owner string) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT id, owner, name, public, style, created_at, updated_at
		 FROM styles WHERE owner = ? ORDER BY updated_at DESC`, owner)
}

// ListPublic returns all styles shared to the hub, newest first.
func (s *Store) ListPublic(ctx context.Context) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT id, owner, name, public, style, created_at, updated_at
		 FROM styles WHERE public = 1 ORDER BY updated_at DESC`)
}

// Delete removes a style owned by owner. Bookmarks and revisions cascade.
func (s *Store) Delete(ctx context.Context, id, owner string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM styles WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting style: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Fork copies an existing style for a new owner. The copy gets a fresh
// id, a " (Fork)" name suffix, and starts private with its own history.
func (s *Store) Fork(ctx context.Context, id, newOwner string) (Record, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	fork := Record{
		Owner:  newOwner,
		Name:   src.Name + " (Fork)",
		Public: false,
		Style:  src.Style,
	}
	return s.Save(ctx, fork)
}

// AddBookmark marks a style as bookmarked by owner. Bookmarking the same
// style twice is not an error.
func (s *Store) AddBookmark(ctx context.Context, owner, styleID string) error {
	if _, err := s.Get(ctx, styleID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO bookmarks (owner, style_id, created_at) VALUES (?, ?, ?)`,
		owner, styleID, timeString(time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a bookmark. Removing a missing bookmark is not
// an error.
func (s *Store) RemoveBookmark(ctx context.Context, owner, styleID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE owner = ? AND style_id = ?`, owner, styleID)
	if err != nil {
		return fmt.Errorf("removing bookmark: %w", err)
	}
	return nil
}

// ListBookmarks returns the styles owner has bookmarked, newest bookmark
// first.
func (s *Store) ListBookmarks(ctx context.Context, owner string) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT s.id, s.owner, s.name, s.public, s.style, s.created_at, s.updated_at
		 FROM styles s JOIN bookmarks b ON b.style_id = s.id
		 WHERE b.owner = ? ORDER BY b.created_at DESC`, owner)
}

// History returns all revisions of a style, oldest first.
func (s *Store) History(ctx context.Context, id string) ([]Revision, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT version, style, saved_at FROM revisions
		 WHERE style_id = ? ORDER BY version ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var (
			rev       Revision
			styleJSON string
			savedAt   string
		)
		if err := rows.Scan(&rev.Version, &styleJSON, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		if err := json.Unmarshal([]byte(styleJSON), &rev.Style); err != nil {
			return nil, fmt.Errorf("decoding revision %d: %w", rev.Version, err)
		}
		rev.SavedAt, err = parseTime(savedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing saved_at for revision %d: %w", rev.Version, err)
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying styles: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec       Record
		public    int
		styleJSON string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&rec.ID, &rec.Owner, &rec.Name, &public, &styleJSON, &createdAt, &updatedAt)
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(styleJSON), &rec.Style); err != nil {
		return Record{}, fmt.Errorf("decoding style %s: %w", rec.ID, err)
	}
	rec.Public = public != 0
	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	rec.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing updated_at for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timeString(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
