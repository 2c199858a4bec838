// Package main provides the entry point for the ekiden tracker service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/ekiden-tracker/internal/api"
	"github.com/yourusername/ekiden-tracker/internal/config"
	"github.com/yourusername/ekiden-tracker/internal/engine"
	"github.com/yourusername/ekiden-tracker/internal/logger"
	"github.com/yourusername/ekiden-tracker/internal/metrics"
	"github.com/yourusername/ekiden-tracker/internal/provider"
	"github.com/yourusername/ekiden-tracker/internal/scheduler"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults(os.Getenv("EKIDEN_TRACKER_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     version,
	}).Info("Ekiden tracker starting")

	metrics.InitRegistry()

	// Build the document provider
	docProvider := buildProvider(cfg, appLog)
	appLog.WithField("provider", docProvider.Name()).Info("Document provider initialized")

	// Build the refresh engine
	store := engine.NewSnapshotStore()
	refreshSvc := engine.NewRefreshService(docProvider, store, appLog)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run the first cycle immediately so the API comes up with data
	firstCtx, firstCancel := context.WithTimeout(ctx, cfg.ProviderTimeout()*2)
	if _, err := refreshSvc.Refresh(firstCtx); err != nil {
		appLog.WithError(err).Warn("Initial refresh failed; serving once documents become available")
	}
	firstCancel()

	// Schedule the polling loop
	schedLogger := log.New(os.Stdout, "scheduler: ", log.LstdFlags)
	sched := scheduler.NewScheduler(refreshSvc, schedLogger)
	if err := sched.SchedulePolling(cfg.Poll.IntervalSeconds); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule polling")
	}
	if cron := cfg.Poll.CourseRefreshCron; cron != "" {
		if err := sched.ScheduleCourseRefresh(cron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule course refresh")
		}
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Start the API server
	server := api.NewServer(api.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Commit:      commit,
		Port:        strconv.Itoa(cfg.Server.Port),
		Logger:      appLog,
		Refresh:     refreshSvc,
	})
	if err := server.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start API server")
	}

	appLog.WithFields(logrus.Fields{
		"port":          cfg.Server.Port,
		"poll_interval": cfg.Poll.IntervalSeconds,
		"next_run":      sched.GetNextRun(),
	}).Info("Ekiden tracker is running")

	// Wait for shutdown signal
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	// Graceful shutdown
	appLog.Info("Initiating graceful shutdown...")

	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}
	if err := server.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}

	// Give components time to cleanup
	time.Sleep(2 * time.Second)

	appLog.Info("Ekiden tracker shut down successfully")
}

// buildProvider wires the configured document source.
func buildProvider(cfg *config.Config, appLog *logrus.Logger) provider.Provider {
	paths := provider.DefaultDocumentPaths()
	if p := cfg.Provider.LiveReportPath; p != "" {
		paths.LiveReport = p
	}
	if p := cfg.Provider.ResultsPath; p != "" {
		paths.IndividualResults = p
	}
	if p := cfg.Provider.RaceConfigPath; p != "" {
		paths.RaceConfig = p
	}
	if p := cfg.Provider.LocationsPath; p != "" {
		paths.RunnerLocations = p
	}
	if p := cfg.Provider.CoursePath; p != "" {
		paths.CoursePath = p
	}

	if !cfg.UsesHTTPProvider() {
		return provider.NewFileProvider(cfg.Provider.Dir, paths, appLog)
	}

	httpCfg := provider.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.ProviderTimeout()
	httpCfg.MaxRetries = cfg.Provider.RetryAttempts
	httpCfg.RateLimit = cfg.Provider.RequestsPerSecond
	httpCfg.Burst = cfg.Provider.Burst

	httpLogger := log.New(os.Stdout, "document-http: ", log.LstdFlags)
	client := provider.NewRateLimitedHTTPClient(httpCfg, httpLogger)
	return provider.NewHTTPProvider(client, cfg.Provider.BaseURL, paths, appLog)
}
