package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	chat.CreatedAt = time.Now().UTC()
	query := `INSERT INTO chats (owner_id, consumer_id, tool_id, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		chat.OwnerID, chat.ConsumerID, chat.ToolID, chat.CreatedAt,
	).Scan(&chat.ID)
}

func (r *chatRepository) GetByID(ctx context.Context, id int32) (*domain.Chat, error) {
	chat := &domain.Chat{}
	query := `SELECT id, owner_id, consumer_id, tool_id, created_at FROM chats WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&chat.ID, &chat.OwnerID, &chat.ConsumerID, &chat.ToolID, &chat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("chat", id)
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *chatRepository) GetBetween(ctx context.Context, userA, userB, toolID int32) (*domain.Chat, error) {
	chat := &domain.Chat{}
	query := `SELECT id, owner_id, consumer_id, tool_id, created_at FROM chats
	          WHERE tool_id = $3
	            AND ((owner_id = $1 AND consumer_id = $2) OR (owner_id = $2 AND consumer_id = $1))`
	err := r.db.QueryRowContext(ctx, query, userA, userB, toolID).Scan(
		&chat.ID, &chat.OwnerID, &chat.ConsumerID, &chat.ToolID, &chat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("chat", 0)
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Chat, error) {
	query := `SELECT id, owner_id, consumer_id, tool_id, created_at FROM chats
	          WHERE owner_id = $1 OR consumer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.OwnerID, &chat.ConsumerID, &chat.ToolID, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	msg.CreatedAt = time.Now().UTC()
	query := `INSERT INTO messages (chat_id, sender_id, content, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		msg.ChatID, msg.SenderID, msg.Content, msg.CreatedAt,
	).Scan(&msg.ID)
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID int32, limit, offset int32) ([]domain.Message, error) {
	query := `SELECT id, chat_id, sender_id, content, created_at FROM messages
	          WHERE chat_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
