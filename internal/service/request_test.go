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

// stubEmailService records outgoing mail instead of sending it.
type stubEmailService struct {
	created       int
	statusChanged []domain.RequestStatus
	reminders     int
}

func (s *stubEmailService) SendRequestCreated(ctx context.Context, ownerEmail, consumerName, toolName string, requestID int32) error {
	s.created++
	return nil
}

func (s *stubEmailService) SendRequestStatusChanged(ctx context.Context, email string, requestID int32, status domain.RequestStatus) error {
	s.statusChanged = append(s.statusChanged, status)
	return nil
}

func (s *stubEmailService) SendOverdueReminder(ctx context.Context, email string, rentalID int32, endDate string) error {
	s.reminders++
	return nil
}

type requestFixture struct {
	store  *memory.Store
	email  *stubEmailService
	svc    service.RequestService
	ctx    context.Context
	toolID int32
	owner  int32
	renter int32
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner := &domain.User{Username: "jorge", FullName: "Jorge Quispe", Email: "jorge@example.com", PasswordHash: "x"}
	renter := &domain.User{Username: "maria", FullName: "Maria Flores", Email: "maria@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, renter))

	tool := &domain.Tool{OwnerID: owner.ID, Name: "Taladro Inalámbrico", Brand: "DeWalt", Model: "DCD777C2", DailyPrice: 50, IsAvailable: true}
	require.NoError(t, store.Tools().Create(ctx, tool))

	email := &stubEmailService{}
	svc := service.NewRequestService(store.Requests(), store.Tools(), store.Users(), store.Notifications(), email)

	return &requestFixture{
		store:  store,
		email:  email,
		svc:    svc,
		ctx:    ctx,
		toolID: tool.ID,
		owner:  owner.ID,
		renter: renter.ID,
	}
}

func (f *requestFixture) createPending(t *testing.T) *domain.Request {
	t.Helper()
	req, err := f.svc.CreateRequest(f.ctx, f.renter, f.toolID, f.owner, "2025-07-15", "2025-07-20", 250)
	require.NoError(t, err)
	return req
}

func TestCreateRequest(t *testing.T) {
	f := newRequestFixture(t)

	t.Run("Success", func(t *testing.T) {
		req := f.createPending(t)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.NotZero(t, req.ID)
		assert.Nil(t, req.YapeApprovalCode)
		assert.Equal(t, 250.0, req.TotalAmount)
		assert.Equal(t, 1, f.email.created)
	})

	t.Run("NotifiesOwner", func(t *testing.T) {
		notes, total, err := f.store.Notifications().ListByUser(f.ctx, f.owner, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		require.Len(t, notes, 1)
		assert.Equal(t, "REQUEST_CREATED", notes[0].Attributes["type"])
	})

	t.Run("SameDayRangeRejected", func(t *testing.T) {
		_, err := f.svc.CreateRequest(f.ctx, f.renter, f.toolID, f.owner, "2025-07-15", "2025-07-15", 50)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("ReversedRangeRejected", func(t *testing.T) {
		_, err := f.svc.CreateRequest(f.ctx, f.renter, f.toolID, f.owner, "2025-07-20", "2025-07-15", 50)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("MalformedDateRejected", func(t *testing.T) {
		_, err := f.svc.CreateRequest(f.ctx, f.renter, f.toolID, f.owner, "15/07/2025", "2025-07-20", 50)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NegativeAmountRejected", func(t *testing.T) {
		_, err := f.svc.CreateRequest(f.ctx, f.renter, f.toolID, f.owner, "2025-07-15", "2025-07-20", -1)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestRequestHappyPath(t *testing.T) {
	f := newRequestFixture(t)
	req := f.createPending(t)

	prev := req.Status.Stage()
	step := func(t *testing.T, got *domain.Request, err error, want domain.RequestStatus) {
		t.Helper()
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
		assert.Greater(t, got.Status.Stage(), prev, "stage must only move forward")
		prev = got.Status.Stage()
	}

	got, err := f.svc.ConfirmRequest(f.ctx, f.owner, req.ID)
	step(t, got, err, domain.RequestStatusConfirmed)

	got, err = f.svc.PayRequest(f.ctx, f.renter, req.ID, "YP-000001")
	step(t, got, err, domain.RequestStatusPaid)
	require.NotNil(t, got.YapeApprovalCode)
	assert.Equal(t, "YP-000001", *got.YapeApprovalCode)

	got, err = f.svc.ConfirmReception(f.ctx, f.renter, req.ID)
	step(t, got, err, domain.RequestStatusDelivered)

	got, err = f.svc.MarkReturned(f.ctx, f.renter, req.ID)
	step(t, got, err, domain.RequestStatusReturned)

	got, err = f.svc.ConfirmReturn(f.ctx, f.owner, req.ID)
	step(t, got, err, domain.RequestStatusCompleted)
	assert.True(t, got.Status.IsTerminal())

	// The payment code survives the remaining transitions.
	stored, err := f.store.Requests().GetByID(f.ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.YapeApprovalCode)
	assert.Equal(t, "YP-000001", *stored.YapeApprovalCode)

	// No further transition is legal from completed.
	_, err = f.svc.ConfirmReturn(f.ctx, f.owner, req.ID)
	assert.True(t, domain.IsIllegalTransition(err))
}

func TestRequestActorChecks(t *testing.T) {
	f := newRequestFixture(t)
	req := f.createPending(t)

	t.Run("ConsumerCannotConfirm", func(t *testing.T) {
		_, err := f.svc.ConfirmRequest(f.ctx, f.renter, req.ID)
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("OwnerCannotPay", func(t *testing.T) {
		_, err := f.svc.ConfirmRequest(f.ctx, f.owner, req.ID)
		require.NoError(t, err)
		_, err = f.svc.PayRequest(f.ctx, f.owner, req.ID, "YP-000002")
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("StrangerCannotCancel", func(t *testing.T) {
		_, err := f.svc.CancelRequest(f.ctx, 999, req.ID)
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("FailedAttemptLeavesStatusUnchanged", func(t *testing.T) {
		stored, err := f.store.Requests().GetByID(f.ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusConfirmed, stored.Status)
	})
}

func TestRequestStateChecks(t *testing.T) {
	f := newRequestFixture(t)

	t.Run("CancelFromConfirmedFails", func(t *testing.T) {
		req := f.createPending(t)
		_, err := f.svc.ConfirmRequest(f.ctx, f.owner, req.ID)
		require.NoError(t, err)

		_, err = f.svc.CancelRequest(f.ctx, f.renter, req.ID)
		assert.True(t, domain.IsIllegalTransition(err))

		stored, err := f.store.Requests().GetByID(f.ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusConfirmed, stored.Status)
	})

	t.Run("CancelFromPendingSucceeds", func(t *testing.T) {
		req := f.createPending(t)
		got, err := f.svc.CancelRequest(f.ctx, f.renter, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusCanceled, got.Status)
		assert.Equal(t, -1, got.Status.Stage())
	})

	t.Run("RejectFromPendingIsTerminal", func(t *testing.T) {
		req := f.createPending(t)
		got, err := f.svc.RejectRequest(f.ctx, f.owner, req.ID)
		require.NoError(t, err)
		assert.True(t, got.Status.IsTerminal())

		_, err = f.svc.ConfirmRequest(f.ctx, f.owner, req.ID)
		assert.True(t, domain.IsIllegalTransition(err))
	})

	t.Run("PayBeforeConfirmFails", func(t *testing.T) {
		req := f.createPending(t)
		_, err := f.svc.PayRequest(f.ctx, f.renter, req.ID, "YP-000003")
		assert.True(t, domain.IsIllegalTransition(err))
	})

	t.Run("PayWithoutCodeFails", func(t *testing.T) {
		req := f.createPending(t)
		_, err := f.svc.ConfirmRequest(f.ctx, f.owner, req.ID)
		require.NoError(t, err)
		_, err = f.svc.PayRequest(f.ctx, f.renter, req.ID, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("UnknownRequest", func(t *testing.T) {
		_, err := f.svc.ConfirmRequest(f.ctx, f.owner, 9999)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestGetRequestDetail(t *testing.T) {
	f := newRequestFixture(t)
	req := f.createPending(t)

	t.Run("ConsumerView", func(t *testing.T) {
		detail, err := f.svc.GetRequestDetail(f.ctx, f.renter, req.ID, domain.RoleConsumer)
		require.NoError(t, err)
		assert.Equal(t, req.ID, detail.ID)
		require.NotNil(t, detail.ToolInfo)
		assert.Equal(t, "Taladro Inalámbrico", detail.ToolInfo.Name)
		assert.Equal(t, "DeWalt", detail.ToolInfo.Brand)
	})

	t.Run("OwnerView", func(t *testing.T) {
		detail, err := f.svc.GetRequestDetail(f.ctx, f.owner, req.ID, domain.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, req.ID, detail.ID)
	})

	t.Run("WrongRole", func(t *testing.T) {
		_, err := f.svc.GetRequestDetail(f.ctx, f.renter, req.ID, domain.RoleOwner)
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.svc.GetRequestDetail(f.ctx, f.renter, 9999, domain.RoleConsumer)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestRequestListings(t *testing.T) {
	f := newRequestFixture(t)
	f.createPending(t)
	f.createPending(t)

	mine, err := f.svc.ListMyRequests(f.ctx, f.renter)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	owned, err := f.svc.ListOwnerRequests(f.ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	none, err := f.svc.ListMyRequests(f.ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
