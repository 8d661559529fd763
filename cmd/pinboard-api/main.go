package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/logger"
	"github.com/pinboard-dev/pinboard/internal/router"
	"github.com/pinboard-dev/pinboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	srv := &http.Server{
		Addr:    ":" + cfg.Public.Port,
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "port", cfg.Public.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
	logger.Log.Info("server stopped")
}
