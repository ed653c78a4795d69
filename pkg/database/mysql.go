package database

import (
	"fmt"

	"hrm_records_go/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// openMySQL 根据 DSN 连接 MySQL，并配置连接池。
func openMySQL(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := configurePool(db, 20, 5); err != nil {
		return nil, err
	}
	log.Info("MySQL initialized successfully")
	return db, nil
}
