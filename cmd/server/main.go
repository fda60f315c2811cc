package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spycards/spycards-server/internal/card"
	"github.com/spycards/spycards-server/internal/combat"
	"github.com/spycards/spycards-server/internal/config"
	"github.com/spycards/spycards-server/internal/game"
	"github.com/spycards/spycards-server/internal/gateway"
	"github.com/spycards/spycards-server/internal/repository"
	"github.com/spycards/spycards-server/internal/room"
	"github.com/spycards/spycards-server/internal/session"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting spycards server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	catalog, err := card.LoadCatalog(cfg.Game.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.String("path", cfg.Game.CatalogPath),
		zap.Int("cards", catalog.Size()),
	)

	deckSvc := game.NewDeckService(catalog, cfg.Game.Seed)
	resolver := combat.NewResolver(logger)

	sessionMgr := session.NewManager(logger)
	logger.Info("session manager initialized")

	roomMgr := room.NewManager(logger)
	logger.Info("room registry initialized")

	hub := gateway.NewHub(logger)

	coordinator := game.NewCoordinator(deckSvc, resolver, hub, cfg.Game.StepDelay, logger)
	logger.Info("turn coordinator initialized",
		zap.Duration("step_delay", cfg.Game.StepDelay),
	)

	if cfg.Database.Enabled {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)

		results, repoErr := repository.NewResultRepository(ctx, db)
		if repoErr != nil {
			logger.Fatal("failed to initialize result repository", zap.Error(repoErr))
		}
		coordinator.SetRecorder(results)
		logger.Info("match history enabled")
	}

	gw := gateway.New(roomMgr, sessionMgr, coordinator, deckSvc, hub, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: gw.Handler(),
	}

	go func() {
		logger.Info("listening", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(serveErr))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", zap.Error(err))
	}

	logger.Info("spycards server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
