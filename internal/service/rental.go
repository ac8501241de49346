package service

import (
	"context"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/utils"
)

type rentalService struct {
	rentalRepo repository.RentalRepository
	toolRepo   repository.ToolRepository
}

func NewRentalService(rentalRepo repository.RentalRepository, toolRepo repository.ToolRepository) RentalService {
	return &rentalService{rentalRepo: rentalRepo, toolRepo: toolRepo}
}

func (s *rentalService) CreateRental(ctx context.Context, userID, toolID int32, startDate, endDate string, notes *string) (*domain.Rental, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}

	totalPrice, err := utils.ComputeRentalCost(tool.DailyPrice, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rt := &domain.Rental{
		ToolID:     toolID,
		UserID:     userID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: totalPrice,
		Status:     domain.RentalStatusPending,
		Notes:      notes,
	}
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}

	if err := s.toolRepo.SetAvailability(ctx, toolID, false); err != nil {
		logger.Warn("Failed to mark tool unavailable", "tool_id", toolID, "error", err)
	}
	return rt, nil
}

// ActivateRental marks a pending rental as handed over. Only the tool's
// owner can do this.
func (s *rentalService) ActivateRental(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	tool, err := s.toolRepo.GetByID(ctx, rt.ToolID)
	if err != nil {
		return nil, err
	}
	if tool.OwnerID != ownerID {
		return nil, domain.NewUnauthorizedError("rental is for another owner's tool")
	}
	if rt.Status != domain.RentalStatusPending {
		return nil, &domain.IllegalTransitionError{Entity: "rental", ID: rentalID, From: string(rt.Status), Op: "activate"}
	}

	from := rt.Status
	rt.Status = domain.RentalStatusActive
	if err := s.rentalRepo.UpdateStatus(ctx, rt, from); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, userID, rentalID int32, actualReturnDate string, notes *string) (*domain.Rental, error) {
	if _, err := utils.ParseDate("actual_return_date", actualReturnDate); err != nil {
		return nil, err
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.NewUnauthorizedError("rental belongs to another user")
	}
	if rt.Status != domain.RentalStatusActive {
		return nil, &domain.IllegalTransitionError{Entity: "rental", ID: rentalID, From: string(rt.Status), Op: "return"}
	}

	from := rt.Status
	rt.Status = domain.RentalStatusReturned
	rt.ActualReturnDate = &actualReturnDate
	if notes != nil {
		rt.Notes = notes
	}
	if err := s.rentalRepo.UpdateStatus(ctx, rt, from); err != nil {
		return nil, err
	}

	if err := s.toolRepo.SetAvailability(ctx, rt.ToolID, true); err != nil {
		logger.Warn("Failed to mark tool available", "tool_id", rt.ToolID, "error", err)
	}
	return rt, nil
}

func (s *rentalService) CancelRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.NewUnauthorizedError("rental belongs to another user")
	}
	if rt.Status != domain.RentalStatusPending {
		return nil, &domain.IllegalTransitionError{Entity: "rental", ID: rentalID, From: string(rt.Status), Op: "cancel"}
	}

	from := rt.Status
	rt.Status = domain.RentalStatusCancelled
	if err := s.rentalRepo.UpdateStatus(ctx, rt, from); err != nil {
		return nil, err
	}

	if err := s.toolRepo.SetAvailability(ctx, rt.ToolID, true); err != nil {
		logger.Warn("Failed to mark tool available", "tool_id", rt.ToolID, "error", err)
	}
	return rt, nil
}

func (s *rentalService) ListMyRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListByUser(ctx, userID)
}

func (s *rentalService) ListActiveRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListActiveByUser(ctx, userID)
}
