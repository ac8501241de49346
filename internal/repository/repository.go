package repository

import (
	"context"

	"kerramientas-backend/internal/domain"
)

// RequestRepository persists rental requests. Transitions go through
// UpdateStatus, which performs a compare-and-swap on the stored status:
// the write applies only if the persisted status still equals `from`,
// otherwise domain.IllegalTransitionError is returned and the entity is
// left untouched. Requests are never deleted.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	UpdateStatus(ctx context.Context, req *domain.Request, from domain.RequestStatus) error
	ListByConsumer(ctx context.Context, consumerID int32) ([]domain.Request, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Request, error)
}

// RentalRepository persists owner-facing rental records. Update carries
// the same compare-and-swap contract as RequestRepository.UpdateStatus.
type RentalRepository interface {
	Create(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	UpdateStatus(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error)
	ListActiveByUser(ctx context.Context, userID int32) ([]domain.Rental, error)
	// MarkOverdue flips every active rental whose end date precedes
	// asOf (yyyy-mm-dd) to overdue and returns the affected rentals.
	MarkOverdue(ctx context.Context, asOf string) ([]domain.Rental, error)
	ListOverdue(ctx context.Context) ([]domain.Rental, error)
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	SetAvailability(ctx context.Context, id int32, available bool) error
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// ChatRepository persists conversations and their messages. GetBetween
// looks a chat up by its participant pair and tool in either
// direction, which is what keeps chats unique per triple.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id int32) (*domain.Chat, error)
	GetBetween(ctx context.Context, userA, userB, toolID int32) (*domain.Chat, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Chat, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, chatID int32, limit, offset int32) ([]domain.Message, error)
}

// RatingRepository persists tool ratings, one row per (user, tool).
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	GetByID(ctx context.Context, id int32) (*domain.Rating, error)
	GetByUserAndTool(ctx context.Context, userID, toolID int32) (*domain.Rating, error)
	Update(ctx context.Context, rating *domain.Rating) error
	Delete(ctx context.Context, id int32) error
	ListByTool(ctx context.Context, toolID int32) ([]domain.Rating, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Rating, error)
	StatsByTool(ctx context.Context, toolID int32) (*domain.RatingStats, error)
}
