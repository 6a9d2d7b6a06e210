package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription_notifier/internal/app"
	"subscription_notifier/internal/domain/messaging"
	"subscription_notifier/internal/domain/reminder"
	"subscription_notifier/internal/infra/config"
	idb "subscription_notifier/internal/infra/database"
	"subscription_notifier/internal/infra/dedup"
	"subscription_notifier/internal/infra/httpapi"
	"subscription_notifier/internal/infra/logger"
	inframessaging "subscription_notifier/internal/infra/messaging"
	"subscription_notifier/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s, Offsets: %s",
		cfg.LogLevel, cfg.Environment, cfg.Timezone, cfg.ReminderOffsets)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	if err := idb.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("FATAL: Could not ensure database schema: %v", err)
	}

	// Initialize Repositories
	clientRepo := idb.NewPostgresClientRepository(db)
	accountRepo := idb.NewPostgresAccountRepository(db)
	adminRepo := idb.NewPostgresAdminRepository(db)

	// Messaging provider: absent credentials disable sending, they are not fatal.
	var provider messaging.Provider
	if cfg.MessagingConfigured() {
		provider = inframessaging.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
		log.Info("WhatsApp provider initialized.")
	} else {
		provider = messaging.Disabled()
		log.Warn("Twilio credentials missing; reminder sends are disabled.")
	}

	// Cross-instance send dedup, only when Redis is configured.
	var guard app.SendGuard
	if cfg.RedisURL != "" {
		redisGuard, err := dedup.NewRedisGuard(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to redis: %v", err)
		}
		defer redisGuard.Close()
		guard = redisGuard
		log.Info("Redis send guard initialized.")
	} else {
		log.Info("REDIS_URL not set; running without cross-instance send dedup.")
	}

	// Initialize Services
	evaluator := reminder.NewEvaluator(clientRepo)
	notifService := app.NewNotificationService(evaluator, provider, guard, cfg.ReminderOffsets, log)
	reportSvc := app.NewReportService(clientRepo, cfg.DataDir, log)
	clientSvc := app.NewClientService(clientRepo, log)
	accountSvc := app.NewAccountService(accountRepo)
	adminSvc := app.NewAdminService(adminRepo, cfg.SetupToken)

	// The scheduler is constructed and started here at boot, never lazily
	// from a request path.
	jobScheduler, err := scheduler.NewJobScheduler(
		notifService,
		reportSvc,
		log,
		cfg.Timezone,
		cfg.NotifyHour, cfg.NotifyMinute,
		cfg.ReportHour, cfg.ReportMinute,
	)
	if err != nil {
		log.Fatalf("FATAL: Could not create job scheduler: %v", err)
	}
	if err := jobScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start job scheduler: %v", err)
	}

	// HTTP admin surface
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(adminSvc, clientSvc, accountSvc, reportSvc),
	}
	go func() {
		log.Infof("HTTP server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	jobScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
