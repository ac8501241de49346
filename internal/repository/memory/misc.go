package memory

import (
	"context"
	"sort"
	"time"

	"kerramientas-backend/internal/domain"
)

type toolRepository struct {
	store *Store
}

func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tool.ID = s.nextToolID
	s.nextToolID++
	tool.CreatedAt = time.Now().UTC()
	cp := *tool
	s.tools[tool.ID] = &cp
	return nil
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tool, ok := s.tools[id]
	if !ok {
		return nil, domain.NewNotFoundError("tool", id)
	}
	cp := *tool
	return &cp, nil
}

func (r *toolRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tool, ok := s.tools[id]
	if !ok {
		return domain.NewNotFoundError("tool", id)
	}
	tool.IsAvailable = available
	return nil
}

func (r *toolRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tools []domain.Tool
	for _, tool := range s.tools {
		if tool.OwnerID == ownerID {
			tools = append(tools, *tool)
		}
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].ID < tools[j].ID })
	return tools, nil
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now().UTC()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	cp := *user
	return &cp, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("user", 0)
}

type notificationRepository struct {
	store *Store
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = s.nextNotificationID
	s.nextNotificationID++
	note.CreatedAt = time.Now().UTC()
	s.notifications[note.ID] = copyNotification(note)
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Notification
	for _, note := range s.notifications {
		if note.UserID == userID {
			all = append(all, *copyNotification(note))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int32(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notifications[id]
	if !ok || note.UserID != userID {
		return domain.NewNotFoundError("notification", id)
	}
	note.IsRead = true
	return nil
}
