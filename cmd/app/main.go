package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"microapi-go/internal/config"
	"microapi-go/internal/i18n"
	"microapi-go/internal/repository"
	"microapi-go/internal/router"
	"microapi-go/internal/service"
	"microapi-go/pkg/logging"
)

func startServer(r *gin.Engine, scheduler *cron.Cron) {
	addr := viper.GetString("server.addr")

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// 等待正在执行的统计任务结束，再做最后一次同步
	<-scheduler.Stop().Done()
	if err := service.FlushVisitStats(ctx, time.Now()); err != nil {
		logging.Logger.Warn("Final stats flush failed", zap.Error(err))
	}

	if repository.RedisPool != nil {
		if err := repository.RedisPool.Close(); err != nil {
			logging.Logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}
	if sqlDB, err := repository.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logging.Logger.Warn("Database close failed", zap.Error(err))
		}
	}

	logging.Logger.Info("Server exiting")
	_ = logging.Logger.Sync()
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.InitLoggerFromConfig()
	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()

	defaultLang := viper.GetString("i18n.default")
	bundle, err := i18n.InitI18n(defaultLang)
	if err != nil {
		logging.Logger.Fatal("Failed to load i18n messages", zap.Error(err))
	}

	if viper.GetString("log.level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(logging.Logger, bundle, defaultLang)

	scheduler := cron.New()
	cronSpec := viper.GetString("stats.cron")
	_, err = scheduler.AddFunc(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := service.FlushVisitStats(ctx, time.Now()); err != nil {
			logging.Logger.Error("Scheduled stats flush failed", zap.Error(err))
		}
	})
	if err != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.String("spec", cronSpec), zap.Error(err))
	}
	scheduler.Start()

	startServer(r, scheduler)
}
