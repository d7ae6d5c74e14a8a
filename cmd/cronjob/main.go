package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/jobs"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'purge-stale-drafts', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental draft maintenance runner...", "log_level", cfg.Log.Level)

	if cfg.Drafts.Driver == "memory" {
		log.Fatalf("drafts.driver memory has nothing to maintain; use sqlite or postgres")
	}

	// Open the draft store
	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer c.Close()

	logger.Info("Opening draft store...", "driver", cfg.Drafts.Driver)
	drafts, err := c.Drafts(context.Background())
	if err != nil {
		logger.Error("Failed to open draft store", "error", err)
		log.Fatalf("Failed to open draft store: %v", err)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(drafts, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "next_run", cronScheduler.NextRun())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "purge-stale-drafts":
		jobRunner.PurgeStaleDrafts()
	case "report-open-drafts":
		jobRunner.ReportOpenDrafts()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - purge-stale-drafts\n")
		fmt.Printf("  - report-open-drafts\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
