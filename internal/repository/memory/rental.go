package memory

import (
	"context"
	"sort"
	"time"

	"kerramientas-backend/internal/domain"
)

type rentalRepository struct {
	store *Store
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rt.ID = s.nextRentalID
	s.nextRentalID++
	rt.CreatedAt = time.Now().UTC()
	s.rentals[rt.ID] = copyRental(rt)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.rentals[id]
	if !ok {
		return nil, domain.NewNotFoundError("rental", id)
	}
	return copyRental(rt), nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rentals[rt.ID]
	if !ok {
		return domain.NewNotFoundError("rental", rt.ID)
	}
	if stored.Status != from {
		return &domain.IllegalTransitionError{Entity: "rental", ID: rt.ID, From: string(stored.Status), Op: "transition"}
	}

	now := time.Now().UTC()
	stored.Status = rt.Status
	if rt.ActualReturnDate != nil {
		d := *rt.ActualReturnDate
		stored.ActualReturnDate = &d
	}
	if rt.Notes != nil {
		n := *rt.Notes
		stored.Notes = &n
	}
	stored.UpdatedAt = &now
	rt.UpdatedAt = &now
	return nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return r.list(func(rt *domain.Rental) bool { return rt.UserID == userID })
}

func (r *rentalRepository) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return r.list(func(rt *domain.Rental) bool {
		return rt.UserID == userID &&
			(rt.Status == domain.RentalStatusPending || rt.Status == domain.RentalStatusActive)
	})
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, asOf string) ([]domain.Rental, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var overdue []domain.Rental
	for _, rt := range s.rentals {
		if rt.Status == domain.RentalStatusActive && rt.EndDate < asOf {
			rt.Status = domain.RentalStatusOverdue
			ts := now
			rt.UpdatedAt = &ts
			overdue = append(overdue, *copyRental(rt))
		}
	}
	return overdue, nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context) ([]domain.Rental, error) {
	return r.list(func(rt *domain.Rental) bool { return rt.Status == domain.RentalStatusOverdue })
}

func (r *rentalRepository) list(match func(*domain.Rental) bool) ([]domain.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rentals []domain.Rental
	for _, rt := range s.rentals {
		if match(rt) {
			rentals = append(rentals, *copyRental(rt))
		}
	}
	sort.Slice(rentals, func(i, j int) bool {
		return rentals[i].CreatedAt.After(rentals[j].CreatedAt)
	})
	return rentals, nil
}
