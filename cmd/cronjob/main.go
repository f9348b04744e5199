package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/catalog"
	"helicharter-portal/internal/config"
	"helicharter-portal/internal/jobs"
	"helicharter-portal/internal/logger"
	"helicharter-portal/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'refresh-catalog')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Helicopter Charter Cronjob Runner...", "log_level", cfg.Log.Level)

	// The catalog refresh only helps other processes when the cache is shared
	if cfg.Redis.Addr == "" {
		log.Fatalf("redis.addr is required: the cronjob runner warms the shared catalog cache")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	client := backend.NewClient(cfg.Backend.BaseURL, &http.Client{}, config.Seconds(cfg.Backend.RequestTimeoutSeconds))
	logger.Info("Backend configuration", "base_url", client.BaseURL())
	catalogSvc := catalog.NewService(client, catalog.NewRedisCache(rdb), time.Duration(cfg.Redis.CatalogTTLMinutes)*time.Minute)

	// No HTTP server runs here, so there is no rate limiter to sweep
	jobRunner := jobs.NewJobRunner(catalogSvc, nil, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

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
	case "refresh-catalog":
		jobRunner.RefreshCatalog()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - refresh-catalog\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
