package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
)

func TestLoadMissingFile(t *testing.T) {
	a, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	store, err := a.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.IsEmpty() {
		t.Fatalf("expected empty store, got %v", store)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileArchive(dir)
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storeFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err = a.Load()
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CorruptError, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}

	store := models.Store{
		"daily_sleep": {Data: []models.Record{{"day": "2026-08-30", "score": float64(77)}}},
	}
	if err := a.Save(store); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, ok := got["daily_sleep"]
	if !ok {
		t.Fatalf("daily_sleep missing: %v", got)
	}
	if b.Len() != 1 || b.Data[0]["day"] != "2026-08-30" {
		t.Fatalf("unexpected bucket %v", b.Data)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileArchive(dir)
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	if err := a.Save(models.Store{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, storeFile+".tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestLastUpdatedSentinel(t *testing.T) {
	a, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	if got := a.LastUpdated(); got != NeverUpdated {
		t.Fatalf("expected %q, got %q", NeverUpdated, got)
	}
}

func TestSetLastUpdated(t *testing.T) {
	a, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	ts := time.Date(2026, 8, 31, 9, 5, 2, 0, time.UTC)
	if err := a.SetLastUpdated(ts); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := a.LastUpdated(); got != "2026-08-31 09:05:02" {
		t.Fatalf("unexpected marker %q", got)
	}
}
