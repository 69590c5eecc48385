package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Note is a single note row. ID is zero until the note is persisted.
type Note struct {
	ID        int64
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote builds an unsaved note stamped with the current time.
// Empty tag strings are dropped.
func NewNote(title, content string, tags []string) Note {
	now := time.Now().UTC()
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return Note{
		Title:     title,
		Content:   content,
		Tags:      clean,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Options control the sqlite connection pragmas.
type Options struct {
	WALMode     bool
	CacheSizeKB int
	Synchronous string
	TempStore   string
}

// DefaultOptions returns the pragma set used when no config is present.
func DefaultOptions() Options {
	return Options{
		WALMode:     true,
		CacheSizeKB: -64000,
		Synchronous: "NORMAL",
		TempStore:   "MEMORY",
	}
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string, opts Options) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.applyOptions(opts); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyOptions(opts Options) error {
	journal := "DELETE"
	if opts.WALMode {
		journal = "WAL"
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA journal_mode = %s;", journal),
		fmt.Sprintf("PRAGMA cache_size = %d;", opts.CacheSizeKB),
		fmt.Sprintf("PRAGMA synchronous = %s;", opts.Synchronous),
		fmt.Sprintf("PRAGMA temp_store = %s;", opts.TempStore),
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma: %w", err)
		}
	}
	return nil
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	tags TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// ListNotes returns all notes ordered by last update, newest first.
func (s *Store) ListNotes() ([]Note, error) {
	return s.queryNotes(`SELECT id, title, content, tags, created_at, updated_at FROM notes ORDER BY updated_at DESC;`)
}

// SearchNotes runs a case-insensitive substring match over title, content
// and the stored tag text.
func (s *Store) SearchNotes(query string) ([]Note, error) {
	pattern := "%" + query + "%"
	return s.queryNotes(
		`SELECT id, title, content, tags, created_at, updated_at FROM notes
		 WHERE title LIKE ? OR content LIKE ? OR tags LIKE ?
		 ORDER BY updated_at DESC;`,
		pattern, pattern, pattern)
}

func (s *Store) queryNotes(stmt string, args ...any) ([]Note, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetNote returns nil when no note has the given id.
func (s *Store) GetNote(id int64) (*Note, error) {
	row := s.db.QueryRow(`SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE id = ?;`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) CreateNote(n *Note) (int64, error) {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO notes (title, content, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?);`,
		n.Title, n.Content, string(tags),
		n.CreatedAt.UTC().Format(time.RFC3339),
		n.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateNote rewrites title, content and tags and bumps updated_at.
func (s *Store) UpdateNote(id int64, title, content string, tags []string) error {
	encoded, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ? WHERE id = ?;`,
		title, content, string(encoded), time.Now().UTC().Format(time.RFC3339), id)
	return err
}

func (s *Store) DeleteNote(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?;`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var n Note
	var tagsJSON, createdStr, updatedStr string
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &tagsJSON, &createdStr, &updatedStr); err != nil {
		return Note{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		n.Tags = nil
	}
	if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
		n.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedStr); err == nil {
		n.UpdatedAt = updated
	}
	return n, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
