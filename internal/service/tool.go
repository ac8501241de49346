package service

import (
	"context"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type toolService struct {
	toolRepo repository.ToolRepository
}

func NewToolService(toolRepo repository.ToolRepository) ToolService {
	return &toolService{toolRepo: toolRepo}
}

func (s *toolService) AddTool(ctx context.Context, tool *domain.Tool) error {
	if tool.Name == "" {
		return domain.NewValidationError("name", "required")
	}
	if tool.DailyPrice < 0 {
		return domain.NewValidationError("daily_price", "must not be negative")
	}
	tool.IsAvailable = true
	return s.toolRepo.Create(ctx, tool)
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	return s.toolRepo.GetByID(ctx, id)
}

func (s *toolService) ListMyTools(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	return s.toolRepo.ListByOwner(ctx, ownerID)
}
