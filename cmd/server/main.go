package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "helicharter-portal/internal/api/http"
	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/catalog"
	"helicharter-portal/internal/config"
	"helicharter-portal/internal/contact"
	"helicharter-portal/internal/jobs"
	"helicharter-portal/internal/logger"
	"helicharter-portal/internal/notification"
	"helicharter-portal/internal/payment"
	"helicharter-portal/internal/poller"
	"helicharter-portal/internal/scheduler"
	"helicharter-portal/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Helicopter Charter Portal...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	ctx := context.Background()

	// Backend API client
	// No client-wide Timeout: it would cap payment attempts below payment.timeout_seconds
	client := backend.NewClient(cfg.Backend.BaseURL, &http.Client{}, config.Seconds(cfg.Backend.RequestTimeoutSeconds))
	logger.Info("Backend configuration", "base_url", client.BaseURL(), "timeout_seconds", cfg.Backend.RequestTimeoutSeconds)

	// Catalog cache
	cache, closeCache := newCatalogCache(ctx, cfg.Redis)
	defer closeCache()
	catalogSvc := catalog.NewService(client, cache, time.Duration(cfg.Redis.CatalogTTLMinutes)*time.Minute)

	// Push notifications
	var validator notification.TokenValidator
	if cfg.Firebase.Enabled {
		fcm, err := notification.NewFirebaseValidator(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Firebase", "error", err)
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		validator = fcm
		logger.Info("Firebase push token validation enabled")
	} else {
		logger.Info("Firebase disabled, push tokens are forwarded unchecked")
	}
	registrar := notification.NewRegistrar(client, validator)

	// Contact form email
	var sender contact.Sender = contact.LogSender{}
	if cfg.SendGrid.APIKey != "" {
		sender = contact.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		logger.Info("SendGrid contact email enabled", "to", cfg.SendGrid.ToEmail)
	} else {
		logger.Info("SendGrid not configured, contact enquiries are logged only")
	}
	contactSvc := contact.NewService(sender, cfg.SendGrid.ToEmail)

	// Payments
	submitter := payment.NewSubmitter(client, payment.Config{
		Timeout:     config.Seconds(cfg.Payment.TimeoutSeconds),
		MaxRetries:  *cfg.Payment.MaxRetries,
		BackoffBase: config.Millis(cfg.Payment.BackoffBaseMs),
	})
	paymentPoller := poller.NewPaymentPoller(client, poller.Config{
		Interval:      config.Seconds(cfg.Polling.PaymentIntervalSeconds),
		MaxAttempts:   cfg.Polling.PaymentMaxAttempts,
		RedirectDelay: config.Millis(cfg.Polling.RedirectDelayMs),
	})

	limiter := httpapi.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst)
	if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
		log.Fatalf("Invalid trusted proxies: %v", err)
	}
	if len(cfg.RateLimit.TrustedProxies) > 0 {
		logger.Info("Trusting X-Forwarded-For from proxies", "proxies", cfg.RateLimit.TrustedProxies)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:           client,
		Bookings:       client,
		Chat:           client,
		Catalog:        catalogSvc,
		Payments:       submitter,
		Poller:         paymentPoller,
		Push:           registrar,
		Contact:        contactSvc,
		Sessions:       session.NewManager(cfg.Session),
		Limiter:        limiter,
		ChatInterval:   config.Seconds(cfg.Polling.ChatIntervalSeconds),
		UnreadInterval: config.Seconds(cfg.Polling.UnreadIntervalSeconds),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Scheduled jobs
	var cronScheduler *scheduler.Scheduler
	if !cfg.Scheduler.Disabled {
		cronScheduler = scheduler.NewScheduler(jobs.NewJobRunner(catalogSvc, limiter, cfg))
		cronScheduler.Start()
	} else {
		logger.Info("In-process scheduler disabled")
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeoutSeconds),
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	logger.Info("Portal stopped. Goodbye!")
}

// newCatalogCache connects to Redis when configured and falls back to an
// in-process cache when it is not configured or not reachable.
func newCatalogCache(ctx context.Context, cfg config.RedisConfig) (catalog.Cache, func()) {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, using in-memory catalog cache")
		return catalog.NewMemoryCache(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory catalog cache", "addr", cfg.Addr, "error", err)
		_ = rdb.Close()
		return catalog.NewMemoryCache(), func() {}
	}

	logger.Info("Redis catalog cache connected", "addr", cfg.Addr, "db", cfg.DB)
	return catalog.NewRedisCache(rdb), func() { _ = rdb.Close() }
}
