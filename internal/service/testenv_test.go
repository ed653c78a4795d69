package service

import (
	"os"
	"path/filepath"
	"testing"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/database"
	"hrm_records_go/pkg/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv 是基于真实 SQLite 文件和临时 uploads 目录的服务组合。
type testEnv struct {
	dir    string
	dbPath string
	db     *gorm.DB
	store  *storage.Store
	repos  TransferRepos

	depts     DepartmentService
	members   MemberService
	documents DocumentService
	histories WorkHistoryService
	awards    AwardService
	transfer  TransferService
	backup    BackupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "database.sqlite")
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, SQLitePath: dbPath, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	if err := database.RunMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := storage.NewStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	repos := TransferRepos{
		Departments:   repository.NewDepartmentRepository(db),
		Members:       repository.NewMemberRepository(db),
		Documents:     repository.NewDocumentRepository(db),
		WorkHistories: repository.NewWorkHistoryRepository(db),
		Awards:        repository.NewAwardRepository(db),
		Maintenance:   repository.NewMaintenanceRepository(db),
	}
	return &testEnv{
		dir:       dir,
		dbPath:    dbPath,
		db:        db,
		store:     store,
		repos:     repos,
		depts:     NewDepartmentService(repos.Departments, store),
		members:   NewMemberService(repos.Members, repos.Departments, store),
		documents: NewDocumentService(repos.Documents, repos.Members, store),
		histories: NewWorkHistoryService(repos.WorkHistories, repos.Members),
		awards:    NewAwardService(repos.Awards, repos.Members, repos.Departments),
		transfer:  NewTransferService(repos, store),
		backup: NewBackupService(repos.Maintenance, BackupLocations{
			Driver:     database.DriverSQLite,
			SQLitePath: dbPath,
			UploadsDir: store.Dir(),
		}),
	}
}

// writeSource 在上传目录之外创建一个待复制的源文件。
func (e *testEnv) writeSource(t *testing.T, name, content string) string {
	t.Helper()
	src := filepath.Join(e.dir, "src", name)
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return src
}

func (e *testEnv) mustDepartment(t *testing.T, name string) *model.Department {
	t.Helper()
	d, err := e.depts.Create(nil, name, "")
	if err != nil {
		t.Fatalf("create department %q: %v", name, err)
	}
	return d
}

func (e *testEnv) mustMember(t *testing.T, deptID uint, name string) *model.Member {
	t.Helper()
	m, err := e.members.Create(nil, MemberInput{DepartmentID: deptID, FullName: name})
	if err != nil {
		t.Fatalf("create member %q: %v", name, err)
	}
	return m
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
