package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/config"
	"github.com/noah-isme/clarifyai-api/internal/database"
	"github.com/noah-isme/clarifyai-api/internal/handler"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/internal/router"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher events.Publisher = events.Nop{}
	natsConn, err := events.Connect(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	if natsConn != nil {
		defer natsConn.Drain()
		publisher = events.NewNATSPublisher(natsConn, cfg.NATSSubjectPrefix, logger)
	}

	if cfg.JWTSecret == "" {
		logger.Warn().Msg("jwt secret not configured; protected routes will fail")
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, auth.WithAudience(cfg.JWTAudience))

	validate := utils.NewValidator()

	faqRepo := repository.NewFAQRepository(db, logger)
	announcementRepo := repository.NewAnnouncementRepository(db, logger)
	chatLogRepo := repository.NewChatLogRepository(db, logger)

	faqService := service.NewFAQService(faqRepo, validate, publisher, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, redisClient, cfg.AnnouncementsCacheTTL, validate, publisher, logger)
	chatLogService := service.NewChatLogService(chatLogRepo, validate, publisher, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: router.ErrorHandler(cfg, logger),
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    !cfg.IsProduction(),
	})
	router.Register(app, cfg, router.Dependencies{
		FAQHandler:          handler.NewFAQHandler(faqService, logger),
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService, logger),
		ChatLogHandler:      handler.NewChatLogHandler(chatLogService, logger),
		AuthHandler:         handler.NewAuthHandler(),
		JWTMiddleware:       middleware.JWTProtected(verifier),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("starting server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
