package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/utils"
)

type requestService struct {
	requestRepo repository.RequestRepository
	toolRepo    repository.ToolRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		toolRepo:    toolRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, consumerID, toolID, ownerID int32, startDate, endDate string, totalAmount float64) (*domain.Request, error) {
	start, err := utils.ParseDate("start_date", startDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate("end_date", endDate)
	if err != nil {
		return nil, err
	}
	// A request covers at least one full day.
	if int(end.Sub(start).Hours()/24) < 1 {
		return nil, domain.NewValidationError("end_date", "must be at least one day after start_date")
	}
	if totalAmount < 0 {
		return nil, domain.NewValidationError("total_amount", "must not be negative")
	}

	req := &domain.Request{
		ToolID:      toolID,
		OwnerID:     ownerID,
		ConsumerID:  consumerID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalAmount: totalAmount,
		Status:      domain.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, ownerID, "New Rental Request",
		fmt.Sprintf("You have a new request for tool %d", toolID), req.ID, "REQUEST_CREATED")
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil {
		consumerName := fmt.Sprintf("user %d", consumerID)
		if consumer, err := s.userRepo.GetByID(ctx, consumerID); err == nil {
			consumerName = consumer.Username
		}
		toolName := fmt.Sprintf("tool %d", toolID)
		if tool, err := s.toolRepo.GetByID(ctx, toolID); err == nil {
			toolName = tool.Name
		}
		if err := s.emailSvc.SendRequestCreated(ctx, owner.Email, consumerName, toolName, req.ID); err != nil {
			logger.Warn("Failed to send request-created email", "request_id", req.ID, "error", err)
		}
	}

	return req, nil
}

func (s *requestService) GetRequestDetail(ctx context.Context, userID, requestID int32, role domain.RequesterRole) (*domain.RequestDetail, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleOwner:
		if req.OwnerID != userID {
			return nil, domain.NewUnauthorizedError("request belongs to another owner")
		}
	default:
		if req.ConsumerID != userID {
			return nil, domain.NewUnauthorizedError("request belongs to another consumer")
		}
	}

	detail := &domain.RequestDetail{Request: *req}
	if tool, err := s.toolRepo.GetByID(ctx, req.ToolID); err == nil {
		detail.ToolInfo = tool.Info()
	}
	return detail, nil
}

func (s *requestService) ListMyRequests(ctx context.Context, consumerID int32) ([]domain.Request, error) {
	return s.requestRepo.ListByConsumer(ctx, consumerID)
}

func (s *requestService) ListOwnerRequests(ctx context.Context, ownerID int32) ([]domain.Request, error) {
	return s.requestRepo.ListByOwner(ctx, ownerID)
}

func (s *requestService) ConfirmRequest(ctx context.Context, ownerID, requestID int32) (*domain.Request, error) {
	return s.ownerTransition(ctx, ownerID, requestID, "confirm",
		domain.RequestStatusPending, domain.RequestStatusConfirmed,
		"Request Confirmed", "Your rental request was confirmed by the owner")
}

func (s *requestService) RejectRequest(ctx context.Context, ownerID, requestID int32) (*domain.Request, error) {
	return s.ownerTransition(ctx, ownerID, requestID, "reject",
		domain.RequestStatusPending, domain.RequestStatusRejected,
		"Request Rejected", "Your rental request was rejected by the owner")
}

func (s *requestService) PayRequest(ctx context.Context, consumerID, requestID int32, yapeCode string) (*domain.Request, error) {
	if yapeCode == "" {
		return nil, domain.NewValidationError("yape_code", "required")
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ConsumerID != consumerID {
		return nil, domain.NewUnauthorizedError("request belongs to another consumer")
	}
	if req.Status != domain.RequestStatusConfirmed {
		return nil, &domain.IllegalTransitionError{Entity: "request", ID: requestID, From: string(req.Status), Op: "pay"}
	}

	from := req.Status
	req.Status = domain.RequestStatusPaid
	req.YapeApprovalCode = &yapeCode
	if err := s.requestRepo.UpdateStatus(ctx, req, from); err != nil {
		return nil, err
	}

	s.notify(ctx, req.OwnerID, "Request Paid",
		fmt.Sprintf("Request %d was paid with code %s", req.ID, yapeCode), req.ID, "REQUEST_PAID")
	s.statusEmail(ctx, req.OwnerID, req)
	return req, nil
}

func (s *requestService) ConfirmReception(ctx context.Context, consumerID, requestID int32) (*domain.Request, error) {
	return s.consumerTransition(ctx, consumerID, requestID, "confirm reception of",
		domain.RequestStatusPaid, domain.RequestStatusDelivered,
		"Tool Delivered", "The consumer confirmed receiving the tool")
}

// MarkReturned moves a delivered request to returned. The consumer
// initiates it when handing the tool back; the owner then acknowledges
// with ConfirmReturn to complete the lifecycle.
func (s *requestService) MarkReturned(ctx context.Context, consumerID, requestID int32) (*domain.Request, error) {
	return s.consumerTransition(ctx, consumerID, requestID, "mark returned",
		domain.RequestStatusDelivered, domain.RequestStatusReturned,
		"Tool Returned", "The consumer returned the tool; please confirm")
}

func (s *requestService) ConfirmReturn(ctx context.Context, ownerID, requestID int32) (*domain.Request, error) {
	return s.ownerTransition(ctx, ownerID, requestID, "confirm return of",
		domain.RequestStatusReturned, domain.RequestStatusCompleted,
		"Request Completed", "The owner confirmed the return; the rental is complete")
}

func (s *requestService) CancelRequest(ctx context.Context, consumerID, requestID int32) (*domain.Request, error) {
	return s.consumerTransition(ctx, consumerID, requestID, "cancel",
		domain.RequestStatusPending, domain.RequestStatusCanceled,
		"Request Canceled", "The consumer canceled the rental request")
}

// ownerTransition runs a transition the tool owner initiates and
// notifies the consumer.
func (s *requestService) ownerTransition(ctx context.Context, ownerID, requestID int32, op string, from, to domain.RequestStatus, noteTitle, noteMessage string) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != ownerID {
		return nil, domain.NewUnauthorizedError("request belongs to another owner")
	}
	if req.Status != from {
		return nil, &domain.IllegalTransitionError{Entity: "request", ID: requestID, From: string(req.Status), Op: op}
	}

	req.Status = to
	if err := s.requestRepo.UpdateStatus(ctx, req, from); err != nil {
		return nil, err
	}

	s.notify(ctx, req.ConsumerID, noteTitle, noteMessage, req.ID, "REQUEST_"+string(to))
	s.statusEmail(ctx, req.ConsumerID, req)
	return req, nil
}

// consumerTransition runs a transition the consumer initiates and
// notifies the owner.
func (s *requestService) consumerTransition(ctx context.Context, consumerID, requestID int32, op string, from, to domain.RequestStatus, noteTitle, noteMessage string) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ConsumerID != consumerID {
		return nil, domain.NewUnauthorizedError("request belongs to another consumer")
	}
	if req.Status != from {
		return nil, &domain.IllegalTransitionError{Entity: "request", ID: requestID, From: string(req.Status), Op: op}
	}

	req.Status = to
	if err := s.requestRepo.UpdateStatus(ctx, req, from); err != nil {
		return nil, err
	}

	s.notify(ctx, req.OwnerID, noteTitle, noteMessage, req.ID, "REQUEST_"+string(to))
	s.statusEmail(ctx, req.OwnerID, req)
	return req, nil
}

func (s *requestService) notify(ctx context.Context, userID int32, title, message string, requestID int32, kind string) {
	note := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		DedupeKey: uuid.NewString(),
		Attributes: map[string]string{
			"type":       kind,
			"request_id": fmt.Sprintf("%d", requestID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "user_id", userID, "request_id", requestID, "error", err)
	}
}

func (s *requestService) statusEmail(ctx context.Context, userID int32, req *domain.Request) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendRequestStatusChanged(ctx, user.Email, req.ID, req.Status); err != nil {
		logger.Warn("Failed to send status email", "request_id", req.ID, "status", req.Status, "error", err)
	}
}
