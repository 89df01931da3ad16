package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/josephgoksu/taskvoice/models"
	_ "modernc.org/sqlite"
)

// SQLiteTaskStore implements TaskStore on a SQLite database.
// Insertion order is kept by an autoincrement sequence column.
type SQLiteTaskStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteTaskStore opens (or creates) the database at path.
// ":memory:" opens a private in-memory database.
func NewSQLiteTaskStore(path string, opts ...Option) (*SQLiteTaskStore, error) {
	o := buildOptions(opts)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := o.fs.MkdirAll(dir, 0o755); err != nil {
				return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	// One connection keeps :memory: databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	s := &SQLiteTaskStore{db: db, path: path, now: o.now}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteTaskStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id INTEGER NOT NULL UNIQUE,
		text TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		due TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_done ON tasks(done);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Op: "init schema", Path: s.path, Err: err}
	}
	return nil
}

// Path returns the database path.
func (s *SQLiteTaskStore) Path() string {
	return s.path
}

// Add appends a new open task.
func (s *SQLiteTaskStore) Add(text string, due *string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, &StorageError{Op: "begin", Path: s.path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var maxID int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM tasks`).Scan(&maxID); err != nil {
		return 0, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	task := models.Task{
		ID:   s.now().UnixMilli(),
		Text: text,
		Due:  models.NormalizeDue(due),
	}
	if task.ID <= maxID {
		task.ID = maxID + 1
	}
	if err := models.ValidateStruct(task); err != nil {
		return 0, fmt.Errorf("validation failed for new task: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO tasks (id, text, done, due) VALUES (?, ?, 0, ?)`,
		task.ID, task.Text, nullString(task.Due)); err != nil {
		return 0, &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "commit", Path: s.path, Err: err}
	}
	return task.ID, nil
}

// ListOpen returns every task that is not done, in insertion order.
func (s *SQLiteTaskStore) ListOpen() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, text, done, due FROM tasks WHERE done = 0 ORDER BY seq`)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	defer func() { _ = rows.Close() }()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	return tasks, nil
}

// Complete marks the first task matching query as done.
func (s *SQLiteTaskStore) Complete(query string) (*models.Task, error) {
	q := models.NormalizeQuery(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, &StorageError{Op: "begin", Path: s.path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	found, err := firstMatch(tx, q)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}
	if !found.Done {
		if _, err := tx.Exec(`UPDATE tasks SET done = 1 WHERE id = ?`, found.ID); err != nil {
			return nil, &StorageError{Op: "write", Path: s.path, Err: err}
		}
		if err := tx.Commit(); err != nil {
			return nil, &StorageError{Op: "commit", Path: s.path, Err: err}
		}
		found.Done = true
	}
	return found, nil
}

func firstMatch(tx *sql.Tx, q string) (*models.Task, error) {
	rows, err := tx.Query(`SELECT id, text, done, due FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		if t.Matches(q) {
			return &t, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	return nil, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (models.Task, error) {
	var (
		t    models.Task
		done int
		due  sql.NullString
	)
	if err := r.Scan(&t.ID, &t.Text, &done, &due); err != nil {
		return t, &StorageError{Op: "scan", Err: err}
	}
	t.Done = done != 0
	if due.Valid {
		d := due.String
		t.Due = &d
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Close closes the database.
func (s *SQLiteTaskStore) Close() error {
	return s.db.Close()
}

var _ TaskStore = (*SQLiteTaskStore)(nil)
