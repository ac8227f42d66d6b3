// Command rosterd is a development roster service backed by MySQL.
// It serves the worker API that the dashboard consumes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailorshop/internal/rosterd"
	"tailorshop/pkg/config"
	"tailorshop/pkg/logger"
	mysqlstore "tailorshop/pkg/store/mysql"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	if err := config.Init(); err != nil {
		logger.FatalCtx(ctx, "Failed to load configuration: %v", err)
	}
	cfg := config.GlobalConfig

	if err := logger.Init(); err != nil {
		logger.FatalCtx(ctx, "Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	repo, err := mysqlstore.NewRepository(mysqlstore.DSN(&cfg.MySQL))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to MySQL: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate MySQL schema: %v", err)
	}

	if cfg.Rosterd.APIKey == "" && cfg.Rosterd.JWTSecret == "" {
		logger.WarnCtx(ctx, "rosterd.api_key and rosterd.jwt_secret are empty, API is unauthenticated")
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()
	rosterd.Setup(engine, rosterd.NewHandler(repo.Worker), cfg.Rosterd.APIKey, cfg.Rosterd.JWTSecret)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Rosterd.Port),
		Handler: engine,
	}

	go func() {
		logger.InfoCtx(ctx, "rosterd listening on: %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalCtx(ctx, "HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.InfoCtx(ctx, "Received exit signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(ctx, "HTTP server shutdown error: %v", err)
	}
	logger.InfoCtx(ctx, "rosterd safely exited")
}
