package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"venueseating/config"
	_ "venueseating/docs"
	"venueseating/internal/adapters/auth"
	"venueseating/internal/adapters/email"
	"venueseating/internal/adapters/queue"
	"venueseating/internal/cache"
	deliveryhttp "venueseating/internal/delivery/http"
	"venueseating/internal/delivery/http/controllers"
	"venueseating/internal/delivery/http/middleware"
	"venueseating/internal/domain"
	"venueseating/internal/repository/postgres"
	"venueseating/internal/services"
)

// @title Venue Seating API
// @version 1.0
// @description Seating layout and assignment engine for the event platform.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	chartRepo := postgres.NewChartRepository(db)
	guests := postgres.NewGuestProvider(db)

	// Optional collaborators: drafts, events, summary mail. Each degrades
	// to disabled when unconfigured.
	var publisher domain.ChartEventPublisher
	if cfg.AMQPUrl != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQPUrl, logger)
	}
	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient == nil && cfg.RedisAddr != "" {
		logger.Warn("redis unreachable, draft autosave disabled", "addr", cfg.RedisAddr)
	}
	drafts := cache.NewDraftStore(redisClient, cfg.DraftTTL)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emails := services.NewEmailService(mailer, email.NewTemplateRenderer())

	chartService := services.NewChartService(chartRepo, guests, drafts, publisher, logger)
	assignmentService := services.NewAssignmentService(chartRepo, guests, publisher, logger)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	chartController := controllers.NewChartController(logger, chartService)
	assignmentController := controllers.NewAssignmentController(logger, assignmentService, emails)

	mux := deliveryhttp.NewRouter(chartController, assignmentController, verifier, logger)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
