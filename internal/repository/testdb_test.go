package repository

import (
	"path/filepath"
	"testing"

	"hrm_records_go/internal/model"
	"hrm_records_go/pkg/database"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newSQLiteDB 在临时目录中创建一个已迁移的 SQLite 库，外键开启。
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.sqlite"),
	})
	if err != nil {
		t.Fatalf("database.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.RunMigrate(db); err != nil {
		t.Fatalf("RunMigrate() error: %v", err)
	}
	return db
}

// newMockDB 返回以 sqlmock 为连接的 MySQL 方言句柄，用于校验 SQL 与回滚路径。
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error: %v", err)
	}
	return gdb, mock
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) *model.Department {
	t.Helper()
	d := &model.Department{Name: name}
	mustCreate(t, db, d)
	return d
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// sttByName 返回部门内 姓名 → 序号 的映射，便于断言重排结果。
func sttByName(t *testing.T, db *gorm.DB, departmentID uint) map[string]int {
	t.Helper()
	var members []model.Member
	if err := db.Where("department_id = ?", departmentID).Find(&members).Error; err != nil {
		t.Fatalf("load members: %v", err)
	}
	out := make(map[string]int, len(members))
	for _, m := range members {
		if m.STT == nil {
			out[m.FullName] = 0
			continue
		}
		out[m.FullName] = *m.STT
	}
	return out
}
