package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	req.CreatedAt = time.Now().UTC()
	query := `INSERT INTO requests (tool_id, owner_id, consumer_id, start_date, end_date, total_amount, status, yape_approval_code, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.ToolID, req.OwnerID, req.ConsumerID, req.StartDate, req.EndDate,
		req.TotalAmount, req.Status, req.YapeApprovalCode, req.CreatedAt,
	).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	req := &domain.Request{}
	query := `SELECT id, tool_id, owner_id, consumer_id, start_date, end_date, total_amount, status, yape_approval_code, created_at, updated_at
	          FROM requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.ToolID, &req.OwnerID, &req.ConsumerID, &req.StartDate, &req.EndDate,
		&req.TotalAmount, &req.Status, &req.YapeApprovalCode, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("request", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus writes the request's status and payment code, guarded by
// a compare-and-swap on the previously observed status. A concurrent
// transition makes the guard miss and the caller gets
// IllegalTransitionError without any write taking place.
func (r *requestRepository) UpdateStatus(ctx context.Context, req *domain.Request, from domain.RequestStatus) error {
	now := time.Now().UTC()
	query := `UPDATE requests SET status = $1, yape_approval_code = $2, updated_at = $3 WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, req.Status, req.YapeApprovalCode, now, req.ID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing row from a lost race.
		var current domain.RequestStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM requests WHERE id = $1`, req.ID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("request", req.ID)
		}
		if err != nil {
			return err
		}
		return &domain.IllegalTransitionError{Entity: "request", ID: req.ID, From: string(current), Op: "transition"}
	}
	req.UpdatedAt = &now
	return nil
}

func (r *requestRepository) ListByConsumer(ctx context.Context, consumerID int32) ([]domain.Request, error) {
	return r.list(ctx, `consumer_id`, consumerID)
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Request, error) {
	return r.list(ctx, `owner_id`, ownerID)
}

func (r *requestRepository) list(ctx context.Context, column string, userID int32) ([]domain.Request, error) {
	query := `SELECT id, tool_id, owner_id, consumer_id, start_date, end_date, total_amount, status, yape_approval_code, created_at, updated_at
	          FROM requests WHERE ` + column + ` = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(
			&req.ID, &req.ToolID, &req.OwnerID, &req.ConsumerID, &req.StartDate, &req.EndDate,
			&req.TotalAmount, &req.Status, &req.YapeApprovalCode, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
