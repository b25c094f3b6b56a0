package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/cron"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("rating_debounce=%s", cfg.RatingDebounce)
	log.Debug("status_transition=%s", cfg.StatusTransition)
	log.Debug("random_future_fraction=%.2f", cfg.RandomFutureFraction)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("snapshot_at=%s", cfg.SnapshotAt)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logger.NewContext(ctx, log)

	// Open database
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	loc := cfg.Location()

	// Initialize repositories
	wordRepo := sqlite.NewWordRepository(database)
	reviewRepo := sqlite.NewReviewRepository(database)
	learnedRepo := sqlite.NewLearnedEventRepository(database)
	snapshotRepo := sqlite.NewSnapshotRepository(database)

	// Initialize services
	wordService := services.NewWordService(wordRepo, reviewRepo, learnedRepo, services.WordServiceConfig{
		Policy:         cfg.Policy(),
		Debounce:       cfg.RatingDebounce,
		FutureFraction: cfg.RandomFutureFraction,
		Location:       loc,
	})
	statsService := services.NewStatsService(wordRepo, reviewRepo, learnedRepo, snapshotRepo, loc, time.Now)

	// Initialize worker pool and job queue
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importPool.Start(ctx)
	jobQueue := jobs.NewWorkerQueue(importPool, wordService, jobs.NewTracker(time.Now))
	importService := services.NewImportService(jobQueue)

	if cfg.VocabularyPath != "" {
		job, err := importService.ImportFile(ctx, cfg.VocabularyPath)
		if err != nil {
			log.Error("failed to queue vocabulary seed %s: %v", cfg.VocabularyPath, err)
		} else {
			log.Info("vocabulary seed queued: job_id=%s, entries=%d", job.ID, job.Total)
		}
	}

	// Schedule daily snapshots
	scheduler := cron.New(statsService, cfg.SnapshotAt, loc)
	if err := scheduler.Start(ctx); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		WordService:   wordService,
		StatsService:  statsService,
		ImportService: importService,
		DB:            database,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serverErr:
		log.Error("HTTP server error: %v", err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	scheduler.Stop()

	log.Debug("stopping import pool")
	importPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}
