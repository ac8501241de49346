package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "kerramientas-backend/internal/api/http"
	"kerramientas-backend/internal/config"
	"kerramientas-backend/internal/jobs"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/repository/postgres"
	"kerramientas-backend/internal/scheduler"
	"kerramientas-backend/internal/security"
	"kerramientas-backend/internal/service"
)

// repos bundles the repository set regardless of which backend built it.
type repos struct {
	Requests      repository.RequestRepository
	Rentals       repository.RentalRepository
	Tools         repository.ToolRepository
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
	Chats         repository.ChatRepository
	Ratings       repository.RatingRepository
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Kerramientas backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "repository", cfg.Repository.Type)

	r, closeFn, err := buildRepositories(cfg)
	if err != nil {
		logger.Error("Failed to initialize repositories", "error", err)
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	defer closeFn()

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry(), cfg.RefreshTokenExpiry())

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	authSvc := service.NewAuthService(r.Users, tokenManager)
	requestSvc := service.NewRequestService(r.Requests, r.Tools, r.Users, r.Notifications, emailSvc)
	rentalSvc := service.NewRentalService(r.Rentals, r.Tools)
	toolSvc := service.NewToolService(r.Tools)
	noteSvc := service.NewNotificationService(r.Notifications)
	chatSvc := service.NewChatService(r.Chats, r.Tools, r.Notifications)
	ratingSvc := service.NewRatingService(r.Ratings, r.Tools)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Tokens:         tokenManager,
		Auth:           authSvc,
		Requests:       requestSvc,
		Rentals:        rentalSvc,
		Tools:          toolSvc,
		Notifications:  noteSvc,
		Chats:          chatSvc,
		Ratings:        ratingSvc,
		RequestTimeout: cfg.RequestTimeout(),
	})

	jobRunner := jobs.NewJobRunner(r.Rentals, r.Users, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func buildRepositories(cfg *config.Config) (*repos, func(), error) {
	switch cfg.Repository.Type {
	case config.RepositoryMemory:
		store := memory.NewStore()
		if cfg.Repository.Seed {
			if err := store.Seed(context.Background()); err != nil {
				return nil, nil, err
			}
			logger.Info("Seeded in-memory store with development fixtures")
		}
		return &repos{
			Requests:      store.Requests(),
			Rentals:       store.Rentals(),
			Tools:         store.Tools(),
			Users:         store.Users(),
			Notifications: store.Notifications(),
			Chats:         store.Chats(),
			Ratings:       store.Ratings(),
		}, func() {}, nil

	case config.RepositoryPostgres:
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)
		store := postgres.NewStore(db)
		return &repos{
			Requests:      store.RequestRepository,
			Rentals:       store.RentalRepository,
			Tools:         store.ToolRepository,
			Users:         store.UserRepository,
			Notifications: store.NotificationRepository,
			Chats:         store.ChatRepository,
			Ratings:       store.RatingRepository,
		}, func() { db.Close() }, nil

	default:
		return nil, nil, errors.New("unknown repository type: " + cfg.Repository.Type)
	}
}
