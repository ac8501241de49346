package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/logger"
	"kerramientas-backend/internal/repository"
)

type chatService struct {
	chatRepo repository.ChatRepository
	toolRepo repository.ToolRepository
	noteRepo repository.NotificationRepository
}

func NewChatService(
	chatRepo repository.ChatRepository,
	toolRepo repository.ToolRepository,
	noteRepo repository.NotificationRepository,
) ChatService {
	return &chatService{chatRepo: chatRepo, toolRepo: toolRepo, noteRepo: noteRepo}
}

// StartChat opens a conversation about a tool between the caller and
// the tool's owner. Idempotent: an existing chat for the pair is
// returned as is.
func (s *chatService) StartChat(ctx context.Context, userID, toolID int32) (*domain.Chat, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool.OwnerID == userID {
		return nil, domain.NewValidationError("tool_id", "cannot open a chat about your own tool")
	}

	if existing, err := s.chatRepo.GetBetween(ctx, tool.OwnerID, userID, toolID); err == nil {
		return existing, nil
	}

	chat := &domain.Chat{
		OwnerID:    tool.OwnerID,
		ConsumerID: userID,
		ToolID:     toolID,
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context, userID int32) ([]domain.Chat, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, chatID int32, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "required")
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(userID) {
		return nil, domain.NewUnauthorizedError("chat belongs to other users")
	}

	sender := userID
	msg := &domain.Message{
		ChatID:   chatID,
		SenderID: &sender,
		Content:  content,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	note := &domain.Notification{
		UserID:    chat.OtherParty(userID),
		Title:     "New Message",
		Message:   content,
		DedupeKey: uuid.NewString(),
		Attributes: map[string]string{
			"type":    "CHAT_MESSAGE",
			"chat_id": fmt.Sprintf("%d", chatID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create chat notification", "chat_id", chatID, "error", err)
	}
	return msg, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID, chatID int32, page, pageSize int32) ([]domain.Message, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(userID) {
		return nil, domain.NewUnauthorizedError("chat belongs to other users")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.chatRepo.ListMessages(ctx, chatID, pageSize, offset)
}
