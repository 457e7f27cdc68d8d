package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/To3Knee/RealmQuest_Go/internal/campaign"
	"github.com/To3Knee/RealmQuest_Go/internal/config"
	"github.com/To3Knee/RealmQuest_Go/internal/database"
	"github.com/To3Knee/RealmQuest_Go/internal/database/postgres"
	"github.com/To3Knee/RealmQuest_Go/internal/dice"
	"github.com/To3Knee/RealmQuest_Go/internal/handler"
	"github.com/To3Knee/RealmQuest_Go/internal/roll"
	"github.com/To3Knee/RealmQuest_Go/internal/server"
	"github.com/To3Knee/RealmQuest_Go/internal/worker"
)

const (
	dbMaxConns      = 10
	dbMaxIdleTime   = 5 * time.Minute
	dbMaxLifetime   = 30 * time.Minute
	shutdownTimeout = 15 * time.Second
	workerCount     = 2
	workerQueueSize = 16
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	connString := cfg.GetDBConnString()

	if err := database.RunMigrations(connString); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	handler.InitValidator()

	rollRepo := postgres.NewRollRepository(dbPool)
	configRepo := postgres.NewSystemConfigRepository(dbPool)

	campaignService := campaign.NewService(configRepo, cfg.CampaignCacheTTL)
	rollService := roll.NewService(rollRepo, campaignService, dice.CryptoRoller{})

	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()

	var retentionWorker *worker.RetentionWorker
	if cfg.RollRetentionDays > 0 {
		retentionWorker = worker.NewRetentionWorker(rollService, pool, cfg.RollRetentionDays, cfg.RetentionInterval)
		retentionWorker.Start()
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, rollService, campaignService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sc:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	if retentionWorker != nil {
		if err := retentionWorker.Shutdown(ctx); err != nil {
			slog.Error("Retention worker shutdown failed", "error", err)
		}
	}
	pool.Stop()

	slog.Info("Server stopped")
}
