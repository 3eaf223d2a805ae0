// @title DevEventHub API
// @version 1.0
// @description Listing and booking API for developer events.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"deveventhub/config"
	"deveventhub/internal/adapters/cache"
	"deveventhub/internal/adapters/email"
	httpdelivery "deveventhub/internal/delivery/http"
	"deveventhub/internal/delivery/http/controllers"
	"deveventhub/internal/delivery/http/middleware"
	"deveventhub/internal/domain"
	"deveventhub/internal/platform/database"
	"deveventhub/internal/repository/postgres"
	"deveventhub/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config also comes from the environment, so fall back to a
		// plain exit message here.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	// The database is dialed lazily on first use; a down database at boot
	// does not prevent the server from starting.
	dbManager := database.NewManager(cfg.DBUrl, logger)
	defer dbManager.Close()

	eventRepo := postgres.NewEventRepository(dbManager)
	bookingRepo := postgres.NewBookingRepository(dbManager)

	var eventCache *cache.EventCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL, cache disabled", "err", err)
		} else {
			eventCache = cache.NewEventCache(redis.NewClient(opts), cfg.CacheTTL)
			logger.Info("event cache enabled", "ttl", cfg.CacheTTL)
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Assign through a typed interface variable so a disabled cache stays a
	// nil interface, not a nil *cache.EventCache.
	var ec domain.EventCache
	if eventCache != nil {
		ec = eventCache
	}
	eventService := services.NewEventService(eventRepo, ec, cfg.ServiceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, logger, cfg.ServiceTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService)

	mux := httpdelivery.NewRouter(eventController, bookingController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
