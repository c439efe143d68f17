// ABOUTME: Main entry point for the feed aggregator
// ABOUTME: Wires together all components and runs the update scheduler

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aggregator-core/core/domain"
	"aggregator-core/core/fetch"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
	"aggregator-core/core/parser"
	"aggregator-core/core/scheduler"
	"aggregator-core/infrastructure/cache/memory"
	"aggregator-core/infrastructure/download/standard"
	logruslogger "aggregator-core/infrastructure/logger/logrus"
	"aggregator-core/infrastructure/notify"
	statesqlite "aggregator-core/infrastructure/state/sqlite"
	memstore "aggregator-core/infrastructure/store/memory"
	"aggregator-core/pkg/config"
)

func main() {
	var feedList string
	flag.StringVar(&feedList, "feeds", "", "comma-separated feed URLs to subscribe at startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.New(logruslogger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})
	logger.Info("Starting aggregator", map[string]interface{}{
		"update_interval_minutes": cfg.Update.IntervalMinutes,
		"update_on_startup":       cfg.Update.UpdateOnStartup,
	})

	// Shared infrastructure
	alloc := identity.NewAllocator()
	cache := memory.NewMemoryCache()
	notifier := notify.NewLoggerSink(logger)
	deps := interfaces.Dependencies{
		Cache:    cache,
		Logger:   logger,
		Notifier: notifier,
	}

	store := memstore.NewStore(alloc)
	for _, url := range strings.Split(feedList, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		id := store.AddFeed(url, 0)
		logger.Info("subscribed feed", map[string]interface{}{
			"feed_id": int64(id),
			"url":     url,
		})
	}

	state, err := statesqlite.NewState(cfg.State.Path)
	if err != nil {
		log.Fatalf("Failed to open scheduler state: %v", err)
	}
	defer state.Close()

	downloader := standard.NewDownloader(standard.Config{
		Timeout:           time.Duration(cfg.Download.TimeoutSeconds) * time.Second,
		MaxConcurrent:     cfg.Download.MaxConcurrent,
		RequestsPerSecond: cfg.Download.RequestsPerSecond,
	}, logger)

	registry := parser.NewRegistry(alloc, logger)
	adapter := fetch.New(fetch.Config{
		Silent:      cfg.Update.Silent,
		DocumentTTL: time.Duration(cfg.Cache.DocumentTTLSeconds) * time.Second,
	}, downloader, registry, store, alloc, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(scheduler.Config{
		UpdateInterval:  time.Duration(cfg.Update.IntervalMinutes) * time.Minute,
		UpdateOnStartup: cfg.Update.UpdateOnStartup,
	}, store, state, logger, func(id domain.ID) {
		if err := adapter.UpdateFeed(ctx, id); err != nil {
			logger.Error("feed update failed", map[string]interface{}{
				"feed_id": int64(id),
				"error":   err.Error(),
			})
		}
	})

	sched.Start()
	logger.Info("scheduler started", nil)

	<-ctx.Done()
	logger.Info("shutting down", nil)
	sched.Stop()
}
