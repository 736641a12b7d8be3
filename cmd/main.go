package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/club-management/config"
	"github.com/Dosada05/club-management/db"
	"github.com/Dosada05/club-management/handlers"
	"github.com/Dosada05/club-management/repositories"
	api "github.com/Dosada05/club-management/routes"
	"github.com/Dosada05/club-management/schedule"
	"github.com/Dosada05/club-management/services"
	"github.com/Dosada05/club-management/storage"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := schedule.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Рабочие часы клуба
	businessHours := schedule.Hours{
		Open:  cfg.BusinessOpenHour,
		Close: cfg.BusinessCloseHour,
	}

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	courtRepo := repositories.NewPostgresCourtRepository(dbConn)
	memberRepo := repositories.NewPostgresMemberRepository(dbConn)
	reservationRepo := repositories.NewPostgresReservationRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	sportService := services.NewSportService(sportRepo, cloudflareUploader)
	courtService := services.NewCourtService(courtRepo, sportRepo)
	memberService := services.NewMemberService(memberRepo)
	availabilityService := services.NewAvailabilityService(sportRepo, courtRepo, reservationRepo, businessHours)
	reservationService := services.NewReservationService(reservationRepo, memberRepo, courtRepo, businessHours, wsHub)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	router := api.SetupRoutes(api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Sport:       handlers.NewSportHandler(sportService),
		Court:       handlers.NewCourtHandler(courtService, availabilityService),
		Member:      handlers.NewMemberHandler(memberService),
		Reservation: handlers.NewReservationHandler(reservationService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, courtService),
	}, cfg.JWTSecretKey)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
