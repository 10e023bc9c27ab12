package backup

import (
	"path/filepath"
	"testing"

	"github.com/tally-cli/tally/internal/storage"
)

func setupManagerWithDB(t *testing.T) *Manager {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "tally.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	return NewManager(dbPath)
}

func TestCreateAndListBackups(t *testing.T) {
	mgr := setupManagerWithDB(t)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written outside backup dir: %s", path)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup file is empty")
	}
}

func TestCreateBackup_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up a missing database")
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr := setupManagerWithDB(t)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		t.Fatalf("failed to restore backup: %v", err)
	}

	// Restore snapshots the current database first, so there should now
	// be at least two backups.
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected pre-restore snapshot plus original, got %d backups", len(backups))
	}
}

func TestRestoreBackup_RejectsInvalidFile(t *testing.T) {
	mgr := setupManagerWithDB(t)

	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error restoring a nonexistent backup")
	}
}

func TestListBackups_EmptyDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "tally.db"))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}
