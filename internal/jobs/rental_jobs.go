package jobs

import (
	"context"
	"time"

	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/utils"
)

// MarkOverdueRentals flips active rentals past their end date to
// overdue.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format(utils.DateLayout)

		overdue, err := jr.rentalRepo.MarkOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		logger.Info("Marked rentals as overdue", "count", len(overdue))
	})
}

// SendOverdueReminders emails every user holding an overdue rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.rentalRepo.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for _, rt := range overdue {
			user, err := jr.userRepo.GetByID(ctx, rt.UserID)
			if err != nil {
				logger.Warn("Skipping reminder for unknown user", "rental_id", rt.ID, "user_id", rt.UserID)
				continue
			}
			if err := jr.emailSvc.SendOverdueReminder(ctx, user.Email, rt.ID, rt.EndDate); err != nil {
				logger.Warn("Failed to send overdue reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent overdue reminders", "count", sent, "overdue", len(overdue))
	})
}
