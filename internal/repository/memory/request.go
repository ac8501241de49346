package memory

import (
	"context"
	"sort"
	"time"

	"kerramientas-backend/internal/domain"
)

type requestRepository struct {
	store *Store
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.nextRequestID
	s.nextRequestID++
	req.CreatedAt = time.Now().UTC()
	s.requests[req.ID] = copyRequest(req)
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("request", id)
	}
	return copyRequest(req), nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, req *domain.Request, from domain.RequestStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[req.ID]
	if !ok {
		return domain.NewNotFoundError("request", req.ID)
	}
	if stored.Status != from {
		return &domain.IllegalTransitionError{Entity: "request", ID: req.ID, From: string(stored.Status), Op: "transition"}
	}

	now := time.Now().UTC()
	stored.Status = req.Status
	if req.YapeApprovalCode != nil {
		code := *req.YapeApprovalCode
		stored.YapeApprovalCode = &code
	}
	stored.UpdatedAt = &now
	req.UpdatedAt = &now
	return nil
}

func (r *requestRepository) ListByConsumer(ctx context.Context, consumerID int32) ([]domain.Request, error) {
	return r.list(func(req *domain.Request) bool { return req.ConsumerID == consumerID })
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Request, error) {
	return r.list(func(req *domain.Request) bool { return req.OwnerID == ownerID })
}

func (r *requestRepository) list(match func(*domain.Request) bool) ([]domain.Request, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var requests []domain.Request
	for _, req := range s.requests {
		if match(req) {
			requests = append(requests, *copyRequest(req))
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}
