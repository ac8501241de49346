package memory

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"kerramientas-backend/internal/domain"
)

// Seed loads a small fixture set for development mode so the API has
// data to serve without a database. Password for both users is
// "secret". The hash is generated here instead of hard-coded so the
// fixtures always authenticate.
func (s *Store) Seed(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	secretHash := string(hash)

	users := []*domain.User{
		{Username: "maria", FullName: "Maria Flores", Email: "maria@example.com", PasswordHash: secretHash},
		{Username: "jorge", FullName: "Jorge Quispe", Email: "jorge@example.com", PasswordHash: secretHash},
	}
	for _, u := range users {
		if err := s.Users().Create(ctx, u); err != nil {
			return err
		}
	}

	tools := []*domain.Tool{
		{OwnerID: 2, Name: "Taladro Inalámbrico", Brand: "DeWalt", Model: "DCD777C2", DailyPrice: 50, IsAvailable: true},
		{OwnerID: 2, Name: "Sierra Circular", Brand: "Makita", Model: "5007MG", DailyPrice: 30, IsAvailable: true},
		{OwnerID: 1, Name: "Rotomartillo", Brand: "Bosch", Model: "GBH 2-26", DailyPrice: 60, IsAvailable: true},
	}
	for _, t := range tools {
		if err := s.Tools().Create(ctx, t); err != nil {
			return err
		}
	}

	requests := []*domain.Request{
		{ToolID: 1, OwnerID: 2, ConsumerID: 1, StartDate: "2025-07-15", EndDate: "2025-07-20", TotalAmount: 250, Status: domain.RequestStatusPending},
		{ToolID: 2, OwnerID: 2, ConsumerID: 1, StartDate: "2025-07-20", EndDate: "2025-07-25", TotalAmount: 150, Status: domain.RequestStatusConfirmed},
		{ToolID: 3, OwnerID: 1, ConsumerID: 2, StartDate: "2025-07-05", EndDate: "2025-07-10", TotalAmount: 200, Status: domain.RequestStatusPending},
	}
	for _, req := range requests {
		if err := s.Requests().Create(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
