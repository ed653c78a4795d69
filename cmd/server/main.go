package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hrm_records_go/internal/app"
	"hrm_records_go/internal/config"
	"hrm_records_go/internal/handler"
	"hrm_records_go/internal/middleware"
	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	config.Init(*configPath)
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	a, err := app.New(cfg, true)
	if err != nil {
		log.Fatal("Failed to initialise application", err)
		return
	}
	defer a.Close()

	if err := a.Users.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to ensure admin operator", err)
		return
	}

	h := handler.Handlers{
		User:        handler.NewUserHandler(a.Users),
		Department:  handler.NewDepartmentHandler(a.Departments, a.Members),
		Member:      handler.NewMemberHandler(a.Members, a.Documents, a.WorkHistory, a.Awards),
		Document:    handler.NewDocumentHandler(a.Documents),
		WorkHistory: handler.NewWorkHistoryHandler(a.WorkHistory),
		Award:       handler.NewAwardHandler(a.Awards),
		Stats:       handler.NewStatsHandler(a.Stats),
		Transfer:    handler.NewTransferHandler(a.Transfer, a.Backup, filepath.Join(cfg.Storage.DataDir, "backups")),
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	// 附件上传上限
	r.MaxMultipartMemory = 32 << 20
	handler.RegisterRoutes(r, h, a.JWT, a.Users)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
