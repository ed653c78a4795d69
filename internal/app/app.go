// Package app 按配置组装数据库、存储、仓储和服务，供 HTTP 服务与命令行工具共用。
package app

import (
	"time"

	"hrm_records_go/internal/config"
	"hrm_records_go/internal/repository"
	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/database"
	"hrm_records_go/pkg/log"
	"hrm_records_go/pkg/storage"
	"hrm_records_go/pkg/token"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// App 持有进程级资源。
type App struct {
	Config config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Store  *storage.Store
	JWT    *token.JWTManager

	Users       service.UserService
	Departments service.DepartmentService
	Members     service.MemberService
	Documents   service.DocumentService
	WorkHistory service.WorkHistoryService
	Awards      service.AwardService
	Stats       service.StatsService
	Transfer    service.TransferService
	Backup      service.BackupService
}

// Locations 根据配置计算备份/恢复使用的路径。
func Locations(cfg config.Config) service.BackupLocations {
	return service.BackupLocations{
		Driver:     cfg.Database.Driver,
		SQLitePath: cfg.Database.SQLite.Path,
		UploadsDir: cfg.Storage.UploadsDir,
	}
}

// New 打开数据库并执行迁移，然后组装全部服务。
// withRedis 为 false 时跳过 Redis（命令行工具不需要 token 黑名单）。
func New(cfg config.Config, withRedis bool) (*App, error) {
	db, err := database.Open(database.Options{
		Driver:     cfg.Database.Driver,
		SQLitePath: cfg.Database.SQLite.Path,
		MySQLDSN:   cfg.Database.MySQL.DSN,
	})
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	store, err := storage.NewStore(cfg.Storage.UploadsDir)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a := &App{Config: cfg, DB: db, Store: store}
	if withRedis {
		a.Redis, err = database.NewRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		if a.Redis == nil {
			log.Warnf("redis not configured, logout will not revoke tokens")
		}
	}

	a.JWT = token.NewJWTManager(cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpireHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshTokenExpireDays)*24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	historyRepo := repository.NewWorkHistoryRepository(db)
	awardRepo := repository.NewAwardRepository(db)
	maintRepo := repository.NewMaintenanceRepository(db)

	a.Users = service.NewUserService(userRepo, a.JWT, repository.NewTokenBlacklist(a.Redis))
	a.Departments = service.NewDepartmentService(deptRepo, store)
	a.Members = service.NewMemberService(memberRepo, deptRepo, store)
	a.Documents = service.NewDocumentService(docRepo, memberRepo, store)
	a.WorkHistory = service.NewWorkHistoryService(historyRepo, memberRepo)
	a.Awards = service.NewAwardService(awardRepo, memberRepo, deptRepo)
	a.Stats = service.NewStatsService(repository.NewStatsRepository(db))
	a.Transfer = service.NewTransferService(service.TransferRepos{
		Departments:   deptRepo,
		Members:       memberRepo,
		Documents:     docRepo,
		WorkHistories: historyRepo,
		Awards:        awardRepo,
		Maintenance:   maintRepo,
	}, store)
	a.Backup = service.NewBackupService(maintRepo, Locations(cfg))
	return a, nil
}

// Close 释放数据库与 Redis 连接。
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Warnf("close redis: %v", err)
		}
	}
	if err := database.Close(a.DB); err != nil {
		log.Warnf("close database: %v", err)
	}
}
