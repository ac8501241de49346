// Package memory provides in-memory repository implementations.
// They back the test suites and the standalone development mode
// (repository.type: memory) where no database is available.
package memory

import (
	"sync"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

// Store holds every in-memory repository over a single mutex, mirroring
// the single-database consistency the postgres store gets for free.
type Store struct {
	mu sync.RWMutex

	requests      map[int32]*domain.Request
	rentals       map[int32]*domain.Rental
	tools         map[int32]*domain.Tool
	users         map[int32]*domain.User
	notifications map[int32]*domain.Notification
	chats         map[int32]*domain.Chat
	messages      map[int32]*domain.Message
	ratings       map[int32]*domain.Rating

	nextRequestID      int32
	nextRentalID       int32
	nextToolID         int32
	nextUserID         int32
	nextNotificationID int32
	nextChatID         int32
	nextMessageID      int32
	nextRatingID       int32
}

func NewStore() *Store {
	return &Store{
		requests:           make(map[int32]*domain.Request),
		rentals:            make(map[int32]*domain.Rental),
		tools:              make(map[int32]*domain.Tool),
		users:              make(map[int32]*domain.User),
		notifications:      make(map[int32]*domain.Notification),
		chats:              make(map[int32]*domain.Chat),
		messages:           make(map[int32]*domain.Message),
		ratings:            make(map[int32]*domain.Rating),
		nextRequestID:      1,
		nextRentalID:       1,
		nextToolID:         1,
		nextUserID:         1,
		nextNotificationID: 1,
		nextChatID:         1,
		nextMessageID:      1,
		nextRatingID:       1,
	}
}

func (s *Store) Requests() repository.RequestRepository { return &requestRepository{store: s} }
func (s *Store) Rentals() repository.RentalRepository   { return &rentalRepository{store: s} }
func (s *Store) Tools() repository.ToolRepository       { return &toolRepository{store: s} }
func (s *Store) Users() repository.UserRepository       { return &userRepository{store: s} }
func (s *Store) Notifications() repository.NotificationRepository {
	return &notificationRepository{store: s}
}
func (s *Store) Chats() repository.ChatRepository     { return &chatRepository{store: s} }
func (s *Store) Ratings() repository.RatingRepository { return &ratingRepository{store: s} }

func copyRequest(req *domain.Request) *domain.Request {
	cp := *req
	if req.YapeApprovalCode != nil {
		code := *req.YapeApprovalCode
		cp.YapeApprovalCode = &code
	}
	if req.UpdatedAt != nil {
		ts := *req.UpdatedAt
		cp.UpdatedAt = &ts
	}
	return &cp
}

func copyRental(rt *domain.Rental) *domain.Rental {
	cp := *rt
	if rt.ActualReturnDate != nil {
		d := *rt.ActualReturnDate
		cp.ActualReturnDate = &d
	}
	if rt.Notes != nil {
		n := *rt.Notes
		cp.Notes = &n
	}
	if rt.UpdatedAt != nil {
		ts := *rt.UpdatedAt
		cp.UpdatedAt = &ts
	}
	return &cp
}

func copyNotification(note *domain.Notification) *domain.Notification {
	cp := *note
	if note.Attributes != nil {
		cp.Attributes = make(map[string]string, len(note.Attributes))
		for k, v := range note.Attributes {
			cp.Attributes[k] = v
		}
	}
	return &cp
}
