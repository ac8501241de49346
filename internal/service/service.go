package service

import (
	"context"

	"kerramientas-backend/internal/domain"
)

// RequestService is the rental request lifecycle engine. Every
// transition validates the acting user and the current status before
// writing; illegal actor/status combinations are rejected here, never
// left to callers.
type RequestService interface {
	CreateRequest(ctx context.Context, consumerID, toolID, ownerID int32, startDate, endDate string, totalAmount float64) (*domain.Request, error)
	GetRequestDetail(ctx context.Context, userID, requestID int32, role domain.RequesterRole) (*domain.RequestDetail, error)
	ListMyRequests(ctx context.Context, consumerID int32) ([]domain.Request, error)
	ListOwnerRequests(ctx context.Context, ownerID int32) ([]domain.Request, error)

	ConfirmRequest(ctx context.Context, ownerID, requestID int32) (*domain.Request, error)
	RejectRequest(ctx context.Context, ownerID, requestID int32) (*domain.Request, error)
	PayRequest(ctx context.Context, consumerID, requestID int32, yapeCode string) (*domain.Request, error)
	ConfirmReception(ctx context.Context, consumerID, requestID int32) (*domain.Request, error)
	MarkReturned(ctx context.Context, consumerID, requestID int32) (*domain.Request, error)
	ConfirmReturn(ctx context.Context, ownerID, requestID int32) (*domain.Request, error)
	CancelRequest(ctx context.Context, consumerID, requestID int32) (*domain.Request, error)
}

// RentalService drives the owner-facing rental records.
type RentalService interface {
	CreateRental(ctx context.Context, userID, toolID int32, startDate, endDate string, notes *string) (*domain.Rental, error)
	ActivateRental(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error)
	ReturnRental(ctx context.Context, userID, rentalID int32, actualReturnDate string, notes *string) (*domain.Rental, error)
	CancelRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListMyRentals(ctx context.Context, userID int32) ([]domain.Rental, error)
	ListActiveRentals(ctx context.Context, userID int32) ([]domain.Rental, error)
}

type ToolService interface {
	AddTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id int32) (*domain.Tool, error)
	ListMyTools(ctx context.Context, ownerID int32) ([]domain.Tool, error)
}

type AuthService interface {
	Signup(ctx context.Context, username, fullName, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                                    // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// ChatService runs per-tool conversations between a tool's owner and a
// consumer. Starting a chat that already exists returns the existing
// one; only participants can read or post.
type ChatService interface {
	StartChat(ctx context.Context, userID, toolID int32) (*domain.Chat, error)
	ListChats(ctx context.Context, userID int32) ([]domain.Chat, error)
	SendMessage(ctx context.Context, userID, chatID int32, content string) (*domain.Message, error)
	GetMessages(ctx context.Context, userID, chatID int32, page, pageSize int32) ([]domain.Message, error)
}

// RatingService manages tool ratings. Rating a tool the user already
// rated overwrites the previous score.
type RatingService interface {
	RateTool(ctx context.Context, userID, toolID int32, score float64, comment *string) (*domain.Rating, error)
	DeleteRating(ctx context.Context, userID, ratingID int32) error
	ListToolRatings(ctx context.Context, toolID int32) ([]domain.Rating, error)
	GetToolStats(ctx context.Context, toolID int32) (*domain.RatingStats, error)
}

// EmailService delivers lifecycle mail. Failures are surfaced so the
// caller can decide; the lifecycle engines treat them as best-effort.
type EmailService interface {
	SendRequestCreated(ctx context.Context, ownerEmail, consumerName, toolName string, requestID int32) error
	SendRequestStatusChanged(ctx context.Context, email string, requestID int32, status domain.RequestStatus) error
	SendOverdueReminder(ctx context.Context, email string, rentalID int32, endDate string) error
}
