package database

import (
	"fmt"
	"os"
	"path/filepath"

	"hrm_records_go/pkg/log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLiteDSN 为数据库文件拼接 DSN：开启外键约束并设置忙等待。
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

func openSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// 单用户嵌入式库：所有调用共享同一条连接，写操作天然串行。
	if err := configurePool(db, 1, 1); err != nil {
		return nil, err
	}
	log.Infof("SQLite opened at %s", path)
	return db, nil
}
