package store

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects and configures a TaskStore implementation.
type Config struct {
	Backend string // file (default) or sqlite
	Path    string
	Format  string // file backend only: json, yaml, toml
}

// Open constructs the TaskStore described by cfg.
func Open(cfg Config, opts ...Option) (TaskStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		opts = append([]Option{WithFormat(cfg.Format)}, opts...)
		s, err := NewFileTaskStore(cfg.Path, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteTaskStore(cfg.Path, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q (supported: file, sqlite)", cfg.Backend)
	}
}
