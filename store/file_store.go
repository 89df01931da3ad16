package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/josephgoksu/taskvoice/models"
	"github.com/spf13/afero"
)

const (
	// DefaultDataFile is the backing file name used when none is configured.
	DefaultDataFile = "tasks.json"
	lockSuffix      = ".lock"
)

type options struct {
	fs     afero.Fs
	format string
	now    func() time.Time
}

// Option configures a store constructor.
type Option func(*options)

// WithFs sets the filesystem used by the file store. Locking across
// processes only applies to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

// WithFormat selects the on-disk format of the file store: json, yaml or toml.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithClock overrides the time source used for id assignment.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		fs:     afero.NewOsFs(),
		format: FormatJSON,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FileTaskStore implements TaskStore on a single document file.
// Each operation holds an in-process mutex and, on the OS filesystem, an
// exclusive lock on <file>.lock while it reloads, mutates and rewrites the
// document, so processes sharing one file serialize.
type FileTaskStore struct {
	mu       sync.Mutex
	fs       afero.Fs
	filePath string
	format   string
	now      func() time.Time
	flk      *flock.Flock
	tasks    []models.Task
}

// NewFileTaskStore opens the task file at path, creating it with an empty
// collection when it does not exist.
func NewFileTaskStore(path string, opts ...Option) (*FileTaskStore, error) {
	o := buildOptions(opts)

	format, err := ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultDataFile
		if format != FormatJSON {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
		}
	}

	s := &FileTaskStore{
		fs:       o.fs,
		filePath: path,
		format:   format,
		now:      o.now,
		tasks:    []models.Task{},
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	if _, ok := s.fs.(*afero.OsFs); ok {
		s.flk = flock.New(path + lockSuffix)
	}

	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, &StorageError{Op: "stat", Path: path, Err: err}
	}
	if !exists {
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// Format returns the on-disk format.
func (s *FileTaskStore) Format() string {
	return s.format
}

func (s *FileTaskStore) lock() error {
	s.mu.Lock()
	if s.flk == nil {
		return nil
	}
	if err := s.flk.Lock(); err != nil {
		s.mu.Unlock()
		return &StorageError{Op: "lock", Path: s.flk.Path(), Err: err}
	}
	return nil
}

func (s *FileTaskStore) unlock() {
	if s.flk != nil {
		_ = s.flk.Unlock()
	}
	s.mu.Unlock()
}

// load reads the document from disk. Caller holds the lock.
// A file that vanished since construction counts as an empty collection.
func (s *FileTaskStore) load() error {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = []models.Task{}
			return nil
		}
		return &StorageError{Op: "read", Path: s.filePath, Err: err}
	}

	list, err := decodeDocument(s.format, data)
	if err != nil {
		return &ParseError{Path: s.filePath, Err: err}
	}
	s.tasks = list.Tasks
	return nil
}

// save rewrites the whole document through a temp file and rename.
// Caller holds the lock.
func (s *FileTaskStore) save() error {
	data, err := encodeDocument(s.format, models.TaskList{Tasks: s.tasks})
	if err != nil {
		return fmt.Errorf("marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := fmt.Sprintf("%s.%s.tmp", s.filePath, uuid.NewString())
	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		_ = s.fs.Remove(tempFilePath)
		return &StorageError{Op: "write", Path: tempFilePath, Err: err}
	}
	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		_ = s.fs.Remove(tempFilePath)
		return &StorageError{Op: "write", Path: s.filePath, Err: err}
	}
	return nil
}

// nextID returns the current millisecond timestamp, bumped past the
// largest existing id so ids stay unique and creation-ordered.
func (s *FileTaskStore) nextID() int64 {
	return nextID(s.now(), s.tasks)
}

func nextID(now time.Time, tasks []models.Task) int64 {
	id := now.UnixMilli()
	for _, t := range tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Add appends a new open task and persists the collection.
func (s *FileTaskStore) Add(text string, due *string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}

	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.unlock()

	if err := s.load(); err != nil {
		return 0, fmt.Errorf("reload tasks before add: %w", err)
	}

	task := models.Task{
		ID:   s.nextID(),
		Text: text,
		Due:  models.NormalizeDue(due),
	}
	if err := models.ValidateStruct(task); err != nil {
		return 0, fmt.Errorf("validation failed for new task: %w", err)
	}

	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return 0, fmt.Errorf("save new task: %w", err)
	}
	return task.ID, nil
}

// ListOpen returns every task that is not done, in insertion order.
func (s *FileTaskStore) ListOpen() ([]models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load tasks for list: %w", err)
	}
	return openTasks(s.tasks), nil
}

func openTasks(tasks []models.Task) []models.Task {
	open := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			open = append(open, t.Clone())
		}
	}
	return open
}

// Complete marks the first task matching query as done.
func (s *FileTaskStore) Complete(query string) (*models.Task, error) {
	q := models.NormalizeQuery(query)

	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("reload tasks before complete: %w", err)
	}

	for i := range s.tasks {
		if !s.tasks[i].Matches(q) {
			continue
		}
		if !s.tasks[i].Done {
			s.tasks[i].Done = true
			if err := s.save(); err != nil {
				s.tasks[i].Done = false
				return nil, fmt.Errorf("save task %d after complete: %w", s.tasks[i].ID, err)
			}
		}
		found := s.tasks[i].Clone()
		return &found, nil
	}
	return nil, nil
}

// Close releases the file lock handle. It is safe to call more than once.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

var _ TaskStore = (*FileTaskStore)(nil)
