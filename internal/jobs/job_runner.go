package jobs

import (
	"kerramientas-backend/internal/config"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/service"
)

// JobRunner coordinates the scheduled maintenance jobs.
type JobRunner struct {
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	emailSvc   service.EmailService
	config     *config.Config
}

func NewJobRunner(
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	emailSvc service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		config:     cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
