package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	rating.CreatedAt = time.Now().UTC()
	query := `INSERT INTO ratings (tool_id, user_id, rating, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rating.ToolID, rating.UserID, rating.Score, rating.Comment, rating.CreatedAt,
	).Scan(&rating.ID)
}

func (r *ratingRepository) GetByID(ctx context.Context, id int32) (*domain.Rating, error) {
	return r.get(ctx, `SELECT id, tool_id, user_id, rating, comment, created_at, updated_at FROM ratings WHERE id = $1`, id)
}

func (r *ratingRepository) GetByUserAndTool(ctx context.Context, userID, toolID int32) (*domain.Rating, error) {
	return r.get(ctx, `SELECT id, tool_id, user_id, rating, comment, created_at, updated_at FROM ratings
	                   WHERE user_id = $1 AND tool_id = $2`, userID, toolID)
}

func (r *ratingRepository) get(ctx context.Context, query string, args ...interface{}) (*domain.Rating, error) {
	rating := &domain.Rating{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rating.ID, &rating.ToolID, &rating.UserID, &rating.Score, &rating.Comment,
		&rating.CreatedAt, &rating.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rating", 0)
	}
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	now := time.Now().UTC()
	query := `UPDATE ratings SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, rating.Score, rating.Comment, now, rating.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("rating", rating.ID)
	}
	rating.UpdatedAt = &now
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("rating", id)
	}
	return nil
}

func (r *ratingRepository) ListByTool(ctx context.Context, toolID int32) ([]domain.Rating, error) {
	return r.list(ctx, `tool_id`, toolID)
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rating, error) {
	return r.list(ctx, `user_id`, userID)
}

func (r *ratingRepository) list(ctx context.Context, column string, id int32) ([]domain.Rating, error) {
	query := `SELECT id, tool_id, user_id, rating, comment, created_at, updated_at FROM ratings
	          WHERE ` + column + ` = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(
			&rating.ID, &rating.ToolID, &rating.UserID, &rating.Score, &rating.Comment,
			&rating.CreatedAt, &rating.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (r *ratingRepository) StatsByTool(ctx context.Context, toolID int32) (*domain.RatingStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rating FROM ratings WHERE tool_id = $1`, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.RatingStats{Distribution: map[int]int32{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		stats.TotalRatings++
		sum += score
		star := int(score)
		if star >= 1 && star <= 5 {
			stats.Distribution[star]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = sum / float64(stats.TotalRatings)
	}
	return stats, nil
}
