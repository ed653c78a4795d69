package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/archive"
	"hrm_records_go/pkg/database"
	"hrm_records_go/pkg/log"
)

// 备份包内的固定条目名。
const (
	BundleDatabaseName = "database.sqlite"
	BundleUploadsDir   = "uploads"
)

// BackupLocations 是备份/恢复涉及的本地路径。
type BackupLocations struct {
	Driver     string
	SQLitePath string
	UploadsDir string
}

// BackupService 把 SQLite 数据库与 uploads 目录打包为 zip，或从 zip 恢复。
type BackupService interface {
	Backup(dest string) error
	// Restore 解压到配置的位置，返回写出的文件数。调用方需保证此时没有打开的数据库连接。
	Restore(src string) (int, error)
}

type backupService struct {
	maintRepo repository.MaintenanceRepository
	loc       BackupLocations
}

func NewBackupService(maintRepo repository.MaintenanceRepository, loc BackupLocations) BackupService {
	return &backupService{maintRepo: maintRepo, loc: loc}
}

func (s *backupService) sqliteOnly() error {
	driver := strings.ToLower(strings.TrimSpace(s.loc.Driver))
	if driver != "" && driver != database.DriverSQLite {
		return ErrUnsupportedDriver
	}
	if s.loc.SQLitePath == "" {
		return ErrInvalidInput
	}
	return nil
}

func (s *backupService) Backup(dest string) error {
	if err := s.sqliteOnly(); err != nil {
		return err
	}
	if s.maintRepo == nil {
		return ErrInternal
	}
	if strings.TrimSpace(dest) == "" {
		return ErrInvalidInput
	}
	if s.maintRepo.Dialect() != database.DriverSQLite {
		return ErrUnsupportedDriver
	}

	tmpDir, err := os.MkdirTemp("", "hrm-backup-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	// VACUUM INTO 要求目标文件不存在
	snapshot := filepath.Join(tmpDir, BundleDatabaseName)
	if err := s.maintRepo.SnapshotTo(snapshot); err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}

	entries := []archive.Entry{{Name: BundleDatabaseName, Source: snapshot}}
	uploads, err := archive.DirEntries(s.loc.UploadsDir, BundleUploadsDir)
	if err != nil {
		return fmt.Errorf("scan uploads: %w", err)
	}
	entries = append(entries, uploads...)

	if err := archive.Create(dest, entries); err != nil {
		return fmt.Errorf("write bundle %s: %w", dest, err)
	}
	log.Infow("backup bundle written", "dest", dest, "files", len(entries))
	return nil
}

func (s *backupService) Restore(src string) (int, error) {
	if err := s.sqliteOnly(); err != nil {
		return 0, err
	}
	if _, err := os.Stat(src); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrImportSourceMissing, src)
	}

	dbDir, dbName := filepath.Split(s.loc.SQLitePath)
	if dbDir == "" {
		dbDir = "."
	}
	prefix := BundleUploadsDir + "/"
	route := func(name string) (string, string, bool) {
		switch {
		case name == BundleDatabaseName:
			return dbDir, dbName, true
		case strings.HasPrefix(name, prefix):
			return s.loc.UploadsDir, strings.TrimPrefix(name, prefix), true
		default:
			return "", "", false
		}
	}

	n, err := archive.Extract(src, route)
	if err != nil {
		if errors.Is(err, archive.ErrUnsafePath) {
			log.Warnw("backup bundle rejected", "src", src, "error", err)
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return n, err
	}
	log.Infow("backup bundle restored", "src", src, "files", n)
	return n, nil
}
