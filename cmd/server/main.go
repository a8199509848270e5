// @title           Hostel HTTP Service API
// @version         1.0
// @description     Property onboarding, resident and security staff management, and visitor verification.

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"hostel-http-service/internal/app/routes"
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/internal/infrastructure/database"
	"hostel-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载.env文件，失败时继续使用已有的环境变量
	envErr := godotenv.Load()

	// 获取配置
	cfg := config.GetConfig()

	// 初始化日志配置
	if err := logger.SetupLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Warning("could not load .env file: %v", envErr)
	}
	gin.SetMode(cfg.GinMode)

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("failed to create database pool: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		logger.Error("database migration failed: %v", err)
		os.Exit(1)
	}

	redisClient := services.NewRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 初始化路由
	r := routes.SetupRouter(pool.GetDB(), cfg, redisClient)

	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening on http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown: %v", err)
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		logger.Info("database pool: %+v", stats)
	}
	logger.Info("cpus=%d goroutines=%d", runtime.NumCPU(), runtime.NumGoroutine())
}
