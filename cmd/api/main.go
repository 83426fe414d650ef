package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Zayne-Feng/group-assessment-v3/internal/config"
	"github.com/Zayne-Feng/group-assessment-v3/internal/database"
	"github.com/Zayne-Feng/group-assessment-v3/internal/handler"
	"github.com/Zayne-Feng/group-assessment-v3/internal/middleware"
	"github.com/Zayne-Feng/group-assessment-v3/internal/observability"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
	"github.com/Zayne-Feng/group-assessment-v3/internal/router"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.AppName).Logger()
	if cfg.AppEnv == "production" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	observability.RegisterMetrics()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis and NATS are optional: without them alerts are not broadcast.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, continuing without alert channel")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, continuing without alert subject")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	surveyRepo := repository.NewSurveyResponseRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	stressEventRepo := repository.NewStressEventRepository(db)
	attendanceRepo := repository.NewAttendanceRecordRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	unitOfWork := repository.NewUnitOfWork(db)

	detector := service.NewStressDetector(logger)
	broadcaster := service.NewAlertBroadcaster(redisClient, natsConn, cfg.AlertsChannel, logger)

	surveyService := service.NewSurveyResponseService(unitOfWork, surveyRepo, detector, broadcaster, validate, cfg.StressThreshold, logger)
	alertService := service.NewAlertService(alertRepo, stressEventRepo, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)

	riskDefaults := service.RiskThresholds{
		AttendancePercent: cfg.RiskAttendancePercent,
		Grade:             cfg.RiskGradeThreshold,
		Stress:            cfg.RiskStressThreshold,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SurveyHandler:     handler.NewSurveyHandler(surveyService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		AlertHandler:      handler.NewAlertHandler(alertService, logger),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsService, riskDefaults, validate, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		SurveyRateLimit:   middleware.RateLimit("surveys", cfg.SurveyRateLimitPerMin, time.Minute),
		DB:                db,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("driver", cfg.DatabaseDriver).Msg("wellbeing api started")

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
