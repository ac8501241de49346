package memory

import (
	"context"
	"sort"
	"time"

	"kerramientas-backend/internal/domain"
)

type chatRepository struct {
	store *Store
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	chat.ID = s.nextChatID
	s.nextChatID++
	chat.CreatedAt = time.Now().UTC()
	cp := *chat
	s.chats[chat.ID] = &cp
	return nil
}

func (r *chatRepository) GetByID(ctx context.Context, id int32) (*domain.Chat, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.chats[id]
	if !ok {
		return nil, domain.NewNotFoundError("chat", id)
	}
	cp := *chat
	return &cp, nil
}

func (r *chatRepository) GetBetween(ctx context.Context, userA, userB, toolID int32) (*domain.Chat, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, chat := range s.chats {
		if chat.ToolID != toolID {
			continue
		}
		if (chat.OwnerID == userA && chat.ConsumerID == userB) ||
			(chat.OwnerID == userB && chat.ConsumerID == userA) {
			cp := *chat
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("chat", 0)
}

func (r *chatRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Chat, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chats []domain.Chat
	for _, chat := range s.chats {
		if chat.Participant(userID) {
			chats = append(chats, *chat)
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
	return chats, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[msg.ChatID]; !ok {
		return domain.NewNotFoundError("chat", msg.ChatID)
	}

	msg.ID = s.nextMessageID
	s.nextMessageID++
	msg.CreatedAt = time.Now().UTC()
	s.messages[msg.ID] = copyMessage(msg)
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID int32, limit, offset int32) ([]domain.Message, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Message
	for _, msg := range s.messages {
		if msg.ChatID == chatID {
			all = append(all, *copyMessage(msg))
		}
	}
	// Oldest first, the order a conversation reads in.
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := int32(len(all))
	if offset >= total {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], nil
}

func copyMessage(msg *domain.Message) *domain.Message {
	cp := *msg
	if msg.SenderID != nil {
		id := *msg.SenderID
		cp.SenderID = &id
	}
	return &cp
}
