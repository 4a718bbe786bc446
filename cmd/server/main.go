package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/user/hunter-idle/config"
	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/engine"
	"github.com/user/hunter-idle/internal/server"
	"github.com/user/hunter-idle/internal/store"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	flag.Parse()

	// Set up logger
	logger := setupLogger()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Load content catalog
	catalog, err := content.NewDataLoader(cfg.Game.ContentDir).LoadCatalog()
	if err != nil {
		logger.Fatal("Failed to load content catalog", zap.Error(err))
	}
	logger.Info("Loaded content catalog",
		zap.Int("buildings", len(catalog.Buildings)),
		zap.Int("research", len(catalog.Research)),
		zap.Int("dungeons", len(catalog.Dungeons)),
		zap.Int("artifacts", len(catalog.Artifacts)))

	// Open store
	st, err := store.OpenSQLite(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close()

	// Build processor and HTTP surface
	processor := engine.NewProcessor(st, catalog, logger)
	handler := server.NewHandler(processor, logger)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func setupLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
