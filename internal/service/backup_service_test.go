package service

import (
	"os"
	"path/filepath"
	"testing"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/database"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestBackupService_BackupAndRestore(t *testing.T) {
	env := newTestEnv(t)
	seedTransfer(t, env)

	bundle := filepath.Join(t.TempDir(), "backup.zip")
	require.NoError(t, env.backup.Backup(bundle))

	zr, err := zip.OpenReader(bundle)
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	_ = zr.Close()
	require.Contains(t, names, BundleDatabaseName)
	require.Len(t, names, 2)

	target := t.TempDir()
	loc := BackupLocations{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(target, "restored", "db.sqlite"),
		UploadsDir: filepath.Join(target, "uploads"),
	}
	n, err := NewBackupService(nil, loc).Restore(bundle)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	entries, err := os.ReadDir(loc.UploadsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	db, err := database.Open(database.Options{Driver: database.DriverSQLite, SQLitePath: loc.SQLitePath, LogLevel: logger.Silent})
	require.NoError(t, err)
	defer database.Close(db)
	rows, err := repository.NewMemberRepository(db).Search(model.MemberFilter{}, repository.MemberSortIDAsc)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestBackupService_RejectsOtherDrivers(t *testing.T) {
	svc := NewBackupService(nil, BackupLocations{Driver: database.DriverMySQL, SQLitePath: "x.sqlite"})
	require.ErrorIs(t, svc.Backup(filepath.Join(t.TempDir(), "b.zip")), ErrUnsupportedDriver)
	_, err := svc.Restore("b.zip")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

type stubMaintenance struct {
	repository.MaintenanceRepository
	dialect string
}

func (s stubMaintenance) Dialect() string { return s.dialect }

func TestBackupService_RejectsNonSQLiteConnection(t *testing.T) {
	loc := BackupLocations{SQLitePath: "x.sqlite"}
	svc := NewBackupService(stubMaintenance{dialect: database.DriverMySQL}, loc)
	require.ErrorIs(t, svc.Backup(filepath.Join(t.TempDir(), "b.zip")), ErrUnsupportedDriver)

	require.ErrorIs(t, NewBackupService(nil, loc).Backup(filepath.Join(t.TempDir(), "b.zip")), ErrInternal)
}

func TestBackupService_RestoreRejectsEscapingEntries(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(bundle)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"uploads/ok.txt", "uploads/../../escape.txt"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	target := t.TempDir()
	svc := NewBackupService(nil, BackupLocations{
		SQLitePath: filepath.Join(target, "db.sqlite"),
		UploadsDir: filepath.Join(target, "uploads"),
	})
	_, err = svc.Restore(bundle)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.NoFileExists(t, filepath.Join(target, "uploads", "ok.txt"))
	require.NoFileExists(t, filepath.Join(target, "escape.txt"))
}

func TestBackupService_RestoreMissingBundle(t *testing.T) {
	svc := NewBackupService(nil, BackupLocations{SQLitePath: "db.sqlite", UploadsDir: "uploads"})
	_, err := svc.Restore(filepath.Join(t.TempDir(), "none.zip"))
	require.ErrorIs(t, err, ErrImportSourceMissing)
}
