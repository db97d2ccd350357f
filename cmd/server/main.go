package main

import (
	"context"
	"net/http"
	"os"

	_ "meetbook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"meetbook/internal/ai"
	"meetbook/internal/auth"
	"meetbook/internal/cache"
	"meetbook/internal/config"
	"meetbook/internal/db"
	"meetbook/internal/handler"
	"meetbook/internal/mailer"
	"meetbook/internal/model"
	"meetbook/internal/repository"
	"meetbook/internal/router"
	"meetbook/internal/service"
)

// @title Meetbook API
// @version 1.0
// @description Meeting scheduling API with availability slots, bookings, and model-assisted ranking.
// @host localhost:8000
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.History{},
			&model.Notification{},
			&model.MeetingGuest{},
			&model.Meeting{},
			&model.Slot{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
		log.Info("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Slot{},
		&model.Meeting{},
		&model.MeetingGuest{},
		&model.Notification{},
		&model.History{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warnf("redis unreachable, caching degraded: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)
	meetingRepo := repository.NewMeetingRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	historyRepo := repository.NewHistoryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize outbound integrations
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, log)
	ranker := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAITimeout, log)

	// Initialize services
	historyService := service.NewHistoryService(historyRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	slotService := service.NewSlotService(slotRepo, userRepo, historyService, log)
	meetingService := service.NewMeetingService(meetingRepo, userRepo, notificationService, mail, historyService, log)
	rankingService := service.NewRankingService(slotRepo, userRepo, ranker, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	slotHandler := handler.NewSlotHandler(slotService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	aiHandler := handler.NewAIHandler(rankingService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	historyHandler := handler.NewHistoryHandler(historyService)
	seedHandler := handler.NewSeedHandler(userRepo, slotRepo)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		slotHandler,
		meetingHandler,
		aiHandler,
		notificationHandler,
		historyHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
