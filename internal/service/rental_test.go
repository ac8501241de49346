package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/service"
)

type rentalFixture struct {
	store  *memory.Store
	svc    service.RentalService
	ctx    context.Context
	toolID int32
	owner  int32
	renter int32
}

func newRentalFixture(t *testing.T) *rentalFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner := &domain.User{Username: "jorge", FullName: "Jorge Quispe", Email: "jorge@example.com", PasswordHash: "x"}
	renter := &domain.User{Username: "maria", FullName: "Maria Flores", Email: "maria@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, renter))

	tool := &domain.Tool{OwnerID: owner.ID, Name: "Sierra Circular", Brand: "Makita", Model: "5007MG", DailyPrice: 30, IsAvailable: true}
	require.NoError(t, store.Tools().Create(ctx, tool))

	return &rentalFixture{
		store:  store,
		svc:    service.NewRentalService(store.Rentals(), store.Tools()),
		ctx:    ctx,
		toolID: tool.ID,
		owner:  owner.ID,
		renter: renter.ID,
	}
}

func TestCreateRental(t *testing.T) {
	f := newRentalFixture(t)

	t.Run("PricesFromDailyRate", func(t *testing.T) {
		rt, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-15", "2025-07-20", nil)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, rt.Status)
		assert.Equal(t, 150.0, rt.TotalPrice)
		assert.Nil(t, rt.ActualReturnDate)
	})

	t.Run("MarksToolUnavailable", func(t *testing.T) {
		tool, err := f.store.Tools().GetByID(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.False(t, tool.IsAvailable)
	})

	t.Run("UnknownTool", func(t *testing.T) {
		_, err := f.svc.CreateRental(f.ctx, f.renter, 999, "2025-07-15", "2025-07-20", nil)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("ReversedRangeRejected", func(t *testing.T) {
		_, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-20", "2025-07-15", nil)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestRentalLifecycle(t *testing.T) {
	f := newRentalFixture(t)
	rt, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-15", "2025-07-20", nil)
	require.NoError(t, err)

	t.Run("OnlyOwnerActivates", func(t *testing.T) {
		_, err := f.svc.ActivateRental(f.ctx, f.renter, rt.ID)
		assert.True(t, domain.IsUnauthorized(err))

		got, err := f.svc.ActivateRental(f.ctx, f.owner, rt.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, got.Status)
	})

	t.Run("ActivateTwiceFails", func(t *testing.T) {
		_, err := f.svc.ActivateRental(f.ctx, f.owner, rt.ID)
		assert.True(t, domain.IsIllegalTransition(err))
	})

	t.Run("Return", func(t *testing.T) {
		notes := "minor scratches"
		got, err := f.svc.ReturnRental(f.ctx, f.renter, rt.ID, "2025-07-19", &notes)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, got.Status)
		require.NotNil(t, got.ActualReturnDate)
		assert.Equal(t, "2025-07-19", *got.ActualReturnDate)

		tool, err := f.store.Tools().GetByID(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.True(t, tool.IsAvailable)
	})

	t.Run("ReturnTwiceFails", func(t *testing.T) {
		_, err := f.svc.ReturnRental(f.ctx, f.renter, rt.ID, "2025-07-20", nil)
		assert.True(t, domain.IsIllegalTransition(err))
	})
}

func TestCancelRental(t *testing.T) {
	f := newRentalFixture(t)

	t.Run("PendingCancels", func(t *testing.T) {
		rt, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-15", "2025-07-20", nil)
		require.NoError(t, err)

		got, err := f.svc.CancelRental(f.ctx, f.renter, rt.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, got.Status)

		tool, err := f.store.Tools().GetByID(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.True(t, tool.IsAvailable)
	})

	t.Run("ActiveCannotCancel", func(t *testing.T) {
		rt, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-15", "2025-07-20", nil)
		require.NoError(t, err)
		_, err = f.svc.ActivateRental(f.ctx, f.owner, rt.ID)
		require.NoError(t, err)

		_, err = f.svc.CancelRental(f.ctx, f.renter, rt.ID)
		assert.True(t, domain.IsIllegalTransition(err))
	})

	t.Run("OnlyRenterCancels", func(t *testing.T) {
		rt, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-08-01", "2025-08-05", nil)
		require.NoError(t, err)

		_, err = f.svc.CancelRental(f.ctx, f.owner, rt.ID)
		assert.True(t, domain.IsUnauthorized(err))
	})
}

func TestListRentals(t *testing.T) {
	f := newRentalFixture(t)

	first, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-07-15", "2025-07-20", nil)
	require.NoError(t, err)
	second, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-08-01", "2025-08-05", nil)
	require.NoError(t, err)
	third, err := f.svc.CreateRental(f.ctx, f.renter, f.toolID, "2025-09-01", "2025-09-05", nil)
	require.NoError(t, err)

	_, err = f.svc.ActivateRental(f.ctx, f.owner, first.ID)
	require.NoError(t, err)
	_, err = f.svc.CancelRental(f.ctx, f.renter, third.ID)
	require.NoError(t, err)

	all, err := f.svc.ListMyRentals(f.ctx, f.renter)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// The active listing covers ongoing business: pending and active
	// rentals both appear, cancelled ones do not.
	active, err := f.svc.ListActiveRentals(f.ctx, f.renter)
	require.NoError(t, err)
	require.Len(t, active, 2)
	ids := []int32{active[0].ID, active[1].ID}
	assert.ElementsMatch(t, []int32{first.ID, second.ID}, ids)
}
