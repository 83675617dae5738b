package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todo_api/internal/config"
	httpServer "todo_api/internal/http"
	"todo_api/internal/http/handlers"
	"todo_api/internal/logger"
	"todo_api/internal/service"
	"todo_api/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open storage", "backend", cfg.StorageBackend, "error", err)
	}
	defer b.Close()
	logger.Info("storage ready", "backend", cfg.StorageBackend)

	r := httpServer.NewRouter(httpServer.Deps{
		Config:   cfg,
		Resolver: service.NewResolver(b.store, true),
		Hub:      ws.NewHub(),
		Health:   handlers.NewHealthHandler(version, b.checks),
		Redis:    b.redis,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
