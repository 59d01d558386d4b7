package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/util"
)

const (
	storeFile = "oura_data.json"
	stampFile = "last_updated.txt"
)

// NeverUpdated is what LastUpdated reports before the first refresh.
const NeverUpdated = "Never"

// CorruptError means the persisted store exists but is not valid JSON.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// FileArchive persists the metric store as a single JSON document plus a
// plain-text freshness marker, both under one data directory.
type FileArchive struct {
	storePath string
	stampPath string
}

// NewFileArchive creates the data directory if needed.
func NewFileArchive(dataDir string) (*FileArchive, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileArchive{
		storePath: filepath.Join(dataDir, storeFile),
		stampPath: filepath.Join(dataDir, stampFile),
	}, nil
}

// Load reads the persisted store. A missing file is an empty store, not an
// error; an unreadable document is a CorruptError.
func (a *FileArchive) Load() (models.Store, error) {
	b, err := os.ReadFile(a.storePath)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var store models.Store
	if err := json.Unmarshal(b, &store); err != nil {
		return nil, &CorruptError{Path: a.storePath, Err: err}
	}
	if store == nil {
		store = models.Store{}
	}
	return store, nil
}

// Save rewrites the whole document atomically: write to a temp file in the
// same directory, fsync, then rename over the old one.
func (a *FileArchive) Save(store models.Store) error {
	b, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := a.storePath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp, a.storePath); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// LastUpdated returns the recorded freshness marker, or NeverUpdated if none
// has ever been written.
func (a *FileArchive) LastUpdated() string {
	b, err := os.ReadFile(a.stampPath)
	if err != nil {
		return NeverUpdated
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return NeverUpdated
	}
	return s
}

// SetLastUpdated overwrites the freshness marker with the given wall-clock
// time.
func (a *FileArchive) SetLastUpdated(t time.Time) error {
	if err := os.WriteFile(a.stampPath, []byte(util.FormatTimestamp(t)), 0o644); err != nil {
		return fmt.Errorf("write last-updated: %w", err)
	}
	return nil
}
