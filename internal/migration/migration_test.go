package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dailybloom/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"001_test.sql": {Data: []byte("CREATE TABLE test (id INTEGER);")},
	}, SQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"003_another.sql": {Data: []byte("CREATE TABLE test2 (id INTEGER);")},
		"001_init.sql":    {Data: []byte("CREATE TABLE test1 (id INTEGER);")},
		"002_update.sql":  {Data: []byte("ALTER TABLE test1 ADD COLUMN name TEXT;")},
		"README.md":       {Data: []byte("ignored")},
	}, SQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	names := []string{"init", "update", "another"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != names[i] {
			t.Errorf("migration %d: expected version %d and name %q, got version %d and name %q", i, i+1, names[i], m.Version, m.Name)
		}
	}
}

func TestReadMigrationFilesDuplicateVersion(t *testing.T) {
	db := setupTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"01_b.sql":  {Data: []byte("SELECT 1;")},
	}, SQLite)

	if _, err := runner.ReadMigrationFiles(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate version error, got %v", err)
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)

	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);")},
	}
	runner := NewRunner(db, fsys, SQLite)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (1st) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}

	fsys["002_posts.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE posts (id INTEGER PRIMARY KEY);")}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 more migration applied, got %d", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Nothing left to do
	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("expected no-op, got count=%d err=%v", count, err)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := setupTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE nope (;")},
	}, SQLite)

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected broken migration to fail")
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", count)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("SELECT 1;")},
	}, SQLite)

	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for database newer than migrations")
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	db := setupTestDB(t)

	sub, err := migrations.SQLite()
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	runner := NewRunner(db, sub, SQLite)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&n); err != nil || n != 1 {
		t.Errorf("expected kv table, count=%d err=%v", n, err)
	}
}
