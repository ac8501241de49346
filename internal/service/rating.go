package service

import (
	"context"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type ratingService struct {
	ratingRepo repository.RatingRepository
	toolRepo   repository.ToolRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, toolRepo repository.ToolRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, toolRepo: toolRepo}
}

// RateTool records the caller's score for a tool. A second rating by
// the same user replaces the first one instead of stacking.
func (s *ratingService) RateTool(ctx context.Context, userID, toolID int32, score float64, comment *string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, domain.NewValidationError("rating", "must be between 1 and 5")
	}
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool.OwnerID == userID {
		return nil, domain.NewValidationError("tool_id", "cannot rate your own tool")
	}

	if existing, err := s.ratingRepo.GetByUserAndTool(ctx, userID, toolID); err == nil {
		existing.Score = score
		existing.Comment = comment
		if err := s.ratingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	rating := &domain.Rating{
		ToolID:  toolID,
		UserID:  userID,
		Score:   score,
		Comment: comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, userID, ratingID int32) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.UserID != userID {
		return domain.NewUnauthorizedError("rating belongs to another user")
	}
	return s.ratingRepo.Delete(ctx, ratingID)
}

func (s *ratingService) ListToolRatings(ctx context.Context, toolID int32) ([]domain.Rating, error) {
	return s.ratingRepo.ListByTool(ctx, toolID)
}

func (s *ratingService) GetToolStats(ctx context.Context, toolID int32) (*domain.RatingStats, error) {
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}
	return s.ratingRepo.StatsByTool(ctx, toolID)
}
