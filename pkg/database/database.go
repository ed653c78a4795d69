// Package database 负责打开 GORM 数据库句柄并执行建表迁移。
// 进程只持有一个 *gorm.DB，由 main 创建后注入各个 Repository。
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hrm_records_go/internal/model"
	"hrm_records_go/pkg/log"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options 描述打开数据库所需的最少信息。
type Options struct {
	Driver     string
	SQLitePath string
	MySQLDSN   string
	// LogLevel 控制 SQL 日志输出，默认 Warn。
	LogLevel logger.LogLevel
}

// Open 根据 Driver 打开 SQLite 或 MySQL，并使用 zap 作为 GORM 的 logger。
func Open(opts Options) (*gorm.DB, error) {
	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.IgnoreRecordNotFoundError = true
	gormLogger.SetAsDefault()

	gcfg := &gorm.Config{
		Logger:         gormLogger.LogMode(level),
		TranslateError: true,
	}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		return openSQLite(opts.SQLitePath, gcfg)
	case DriverMySQL:
		return openMySQL(opts.MySQLDSN, gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// RunMigrate 幂等建表。外键均为 ON DELETE CASCADE，删除部门会级联删除人员及其文档。
func RunMigrate(db *gorm.DB) error {
	log.Info("Running migrations...")

	if err := db.AutoMigrate(
		&model.Department{},
		&model.Member{},
		&model.Document{},
		&model.WorkHistory{},
		&model.AwardYear{},
		&model.AwardTitle{},
		&model.AwardAuthority{},
		&model.AwardBatch{},
		&model.StaffAward{},
		&model.DepartmentAward{},
		&model.User{},
	); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	log.Info("Migrations completed successfully")
	return nil
}

// Close 关闭底层连接池。
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsDuplicateKey 判断错误是否来自唯一约束冲突。
// 优先使用 GORM 的错误翻译，驱动不支持翻译时再按错误文本兜底。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

// IsForeignKeyViolation 判断错误是否来自外键约束（引用的父记录不存在）。
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "a foreign key constraint fails")
}

func configurePool(db *gorm.DB, maxOpen, maxIdle int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return nil
}
