package postgres

import (
	"database/sql"

	"kerramientas-backend/internal/repository"
)

// Store bundles the postgres-backed repositories behind one handle.
type Store struct {
	RequestRepository      repository.RequestRepository
	RentalRepository       repository.RentalRepository
	ToolRepository         repository.ToolRepository
	UserRepository         repository.UserRepository
	NotificationRepository repository.NotificationRepository
	ChatRepository         repository.ChatRepository
	RatingRepository       repository.RatingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		RequestRepository:      NewRequestRepository(db),
		RentalRepository:       NewRentalRepository(db),
		ToolRepository:         NewToolRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ChatRepository:         NewChatRepository(db),
		RatingRepository:       NewRatingRepository(db),
	}
}
