package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	rt.CreatedAt = time.Now().UTC()
	query := `INSERT INTO rentals (tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rt.ToolID, rt.UserID, rt.StartDate, rt.EndDate, rt.ActualReturnDate,
		rt.TotalPrice, rt.Status, rt.Notes, rt.CreatedAt,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT id, tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at, updated_at
	          FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.ToolID, &rt.UserID, &rt.StartDate, &rt.EndDate, &rt.ActualReturnDate,
		&rt.TotalPrice, &rt.Status, &rt.Notes, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) error {
	now := time.Now().UTC()
	query := `UPDATE rentals SET status = $1, actual_return_date = $2, notes = $3, updated_at = $4 WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.ActualReturnDate, rt.Notes, now, rt.ID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var current domain.RentalStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM rentals WHERE id = $1`, rt.ID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("rental", rt.ID)
		}
		if err != nil {
			return err
		}
		return &domain.IllegalTransitionError{Entity: "rental", ID: rt.ID, From: string(current), Op: "transition"}
	}
	rt.UpdatedAt = &now
	return nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	query := `SELECT id, tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at, updated_at
	          FROM rentals WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, userID)
}

func (r *rentalRepository) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	query := `SELECT id, tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at, updated_at
	          FROM rentals WHERE user_id = $1 AND status IN ('pending', 'active') ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, userID)
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, asOf string) ([]domain.Rental, error) {
	query := `UPDATE rentals SET status = 'overdue', updated_at = $1 WHERE status = 'active' AND end_date < $2
	          RETURNING id, tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at, updated_at`
	rows, err := r.db.QueryContext(ctx, query, time.Now().UTC(), asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

func (r *rentalRepository) ListOverdue(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT id, tool_id, user_id, start_date, end_date, actual_return_date, total_price, status, notes, created_at, updated_at
	          FROM rentals WHERE status = 'overdue' ORDER BY end_date ASC`
	return r.queryRentals(ctx, query)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

func scanRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(
			&rt.ID, &rt.ToolID, &rt.UserID, &rt.StartDate, &rt.EndDate, &rt.ActualReturnDate,
			&rt.TotalPrice, &rt.Status, &rt.Notes, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
