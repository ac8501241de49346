package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"kerramientas-backend/internal/config"
	"kerramientas-backend/internal/jobs"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/repository/postgres"
	"kerramientas-backend/internal/scheduler"
	"kerramientas-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('mark-overdue-rentals', 'send-overdue-reminders', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cron job runner...", "repository", cfg.Repository.Type)

	var rentalRepo repository.RentalRepository
	var userRepo repository.UserRepository

	switch cfg.Repository.Type {
	case config.RepositoryMemory:
		store := memory.NewStore()
		if cfg.Repository.Seed {
			if err := store.Seed(context.Background()); err != nil {
				log.Fatalf("Failed to seed in-memory store: %v", err)
			}
		}
		rentalRepo = store.Rentals()
		userRepo = store.Users()
	case config.RepositoryPostgres:
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		store := postgres.NewStore(db)
		rentalRepo = store.RentalRepository
		userRepo = store.UserRepository
	default:
		log.Fatalf("Unknown repository type: %q", cfg.Repository.Type)
	}

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	jobRunner := jobs.NewJobRunner(rentalRepo, userRepo, emailSvc, cfg)

	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down cron job runner", "signal", sig.String())
}

func runSingleJob(jr *jobs.JobRunner, name string) {
	switch name {
	case "mark-overdue-rentals":
		jr.MarkOverdueRentals()
	case "send-overdue-reminders":
		jr.SendOverdueReminders()
	case "all":
		jr.MarkOverdueRentals()
		jr.SendOverdueReminders()
	default:
		log.Fatalf("Unknown job: %q", name)
	}
}
