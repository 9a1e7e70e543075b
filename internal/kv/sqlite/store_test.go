package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dailybloom/internal/kv"
)

func setupTestStore(t *testing.T) (*Store, string) {
	dbPath := filepath.Join(t.TempDir(), "bloom.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestSetGetDelete(t *testing.T) {
	store, _ := setupTestStore(t)

	if _, ok, err := store.Get("garden-journal-entries"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("garden-journal-entries", `{"2024-01-01":{}}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("garden-journal-entries", `{"2024-01-02":{}}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := store.Get("garden-journal-entries")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if v != `{"2024-01-02":{}}` {
		t.Errorf("expected overwritten value, got %q", v)
	}

	if err := store.Delete("garden-journal-entries"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("garden-journal-entries"); err != nil {
		t.Fatalf("deleting an absent key should be a no-op, got %v", err)
	}
	if _, ok, _ := store.Get("garden-journal-entries"); ok {
		t.Error("key should be gone")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	store, dbPath := setupTestStore(t)

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}

	current, latest, err := reopened.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("expected schema at latest, got current=%d latest=%d", current, latest)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load error = %v, want ErrNotInitialized", err)
	}
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "bloom.db"))

	if _, _, err := store.Get("k"); !errors.Is(err, kv.ErrUnavailable) {
		t.Errorf("Get before Load = %v, want ErrUnavailable", err)
	}
	if err := store.Set("k", "v"); !errors.Is(err, kv.ErrUnavailable) {
		t.Errorf("Set before Load = %v, want ErrUnavailable", err)
	}
}
