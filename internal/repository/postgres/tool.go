package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	tool.CreatedAt = time.Now().UTC()
	query := `INSERT INTO tools (owner_id, name, brand, model, description, daily_price, image_url, is_available, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tool.OwnerID, tool.Name, tool.Brand, tool.Model, tool.Description,
		tool.DailyPrice, tool.ImageURL, tool.IsAvailable, tool.CreatedAt,
	).Scan(&tool.ID)
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	tool := &domain.Tool{}
	query := `SELECT id, owner_id, name, brand, model, description, daily_price, image_url, is_available, created_at
	          FROM tools WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tool.ID, &tool.OwnerID, &tool.Name, &tool.Brand, &tool.Model, &tool.Description,
		&tool.DailyPrice, &tool.ImageURL, &tool.IsAvailable, &tool.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("tool", id)
	}
	if err != nil {
		return nil, err
	}
	return tool, nil
}

func (r *toolRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tools SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("tool", id)
	}
	return nil
}

func (r *toolRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	query := `SELECT id, owner_id, name, brand, model, description, daily_price, image_url, is_available, created_at
	          FROM tools WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var tool domain.Tool
		if err := rows.Scan(
			&tool.ID, &tool.OwnerID, &tool.Name, &tool.Brand, &tool.Model, &tool.Description,
			&tool.DailyPrice, &tool.ImageURL, &tool.IsAvailable, &tool.CreatedAt,
		); err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}
