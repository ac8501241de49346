package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/service"
)

type chatFixture struct {
	store    *memory.Store
	svc      service.ChatService
	ctx      context.Context
	toolID   int32
	owner    int32
	consumer int32
	stranger int32
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner := &domain.User{Username: "jorge", FullName: "Jorge Quispe", Email: "jorge@example.com", PasswordHash: "x"}
	consumer := &domain.User{Username: "maria", FullName: "Maria Flores", Email: "maria@example.com", PasswordHash: "x"}
	stranger := &domain.User{Username: "pedro", FullName: "Pedro Castillo", Email: "pedro@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, consumer))
	require.NoError(t, store.Users().Create(ctx, stranger))

	tool := &domain.Tool{OwnerID: owner.ID, Name: "Taladro Percutor", Brand: "Bosch", DailyPrice: 20, IsAvailable: true}
	require.NoError(t, store.Tools().Create(ctx, tool))

	return &chatFixture{
		store:    store,
		svc:      service.NewChatService(store.Chats(), store.Tools(), store.Notifications()),
		ctx:      ctx,
		toolID:   tool.ID,
		owner:    owner.ID,
		consumer: consumer.ID,
		stranger: stranger.ID,
	}
}

func TestStartChat(t *testing.T) {
	f := newChatFixture(t)

	t.Run("CreatesConversation", func(t *testing.T) {
		chat, err := f.svc.StartChat(f.ctx, f.consumer, f.toolID)
		require.NoError(t, err)
		assert.Equal(t, f.owner, chat.OwnerID)
		assert.Equal(t, f.consumer, chat.ConsumerID)
		assert.Equal(t, f.toolID, chat.ToolID)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first, err := f.svc.StartChat(f.ctx, f.consumer, f.toolID)
		require.NoError(t, err)
		again, err := f.svc.StartChat(f.ctx, f.consumer, f.toolID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)

		chats, err := f.svc.ListChats(f.ctx, f.consumer)
		require.NoError(t, err)
		assert.Len(t, chats, 1)
	})

	t.Run("OwnTool", func(t *testing.T) {
		_, err := f.svc.StartChat(f.ctx, f.owner, f.toolID)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("UnknownTool", func(t *testing.T) {
		_, err := f.svc.StartChat(f.ctx, f.consumer, 999)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestSendMessage(t *testing.T) {
	f := newChatFixture(t)
	chat, err := f.svc.StartChat(f.ctx, f.consumer, f.toolID)
	require.NoError(t, err)

	t.Run("DeliversAndNotifies", func(t *testing.T) {
		msg, err := f.svc.SendMessage(f.ctx, f.consumer, chat.ID, "Sigue disponible la herramienta?")
		require.NoError(t, err)
		require.NotNil(t, msg.SenderID)
		assert.Equal(t, f.consumer, *msg.SenderID)

		notes, _, err := f.store.Notifications().ListByUser(f.ctx, f.owner, 10, 0)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "CHAT_MESSAGE", notes[0].Attributes["type"])
		assert.Equal(t, fmt.Sprintf("%d", chat.ID), notes[0].Attributes["chat_id"])
	})

	t.Run("BlankContent", func(t *testing.T) {
		_, err := f.svc.SendMessage(f.ctx, f.consumer, chat.ID, "   ")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NonParticipant", func(t *testing.T) {
		_, err := f.svc.SendMessage(f.ctx, f.stranger, chat.ID, "hola")
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("UnknownChat", func(t *testing.T) {
		_, err := f.svc.SendMessage(f.ctx, f.consumer, 999, "hola")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestGetMessages(t *testing.T) {
	f := newChatFixture(t)
	chat, err := f.svc.StartChat(f.ctx, f.consumer, f.toolID)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := f.svc.SendMessage(f.ctx, f.consumer, chat.ID, fmt.Sprintf("mensaje %d", i))
		require.NoError(t, err)
	}

	t.Run("OldestFirst", func(t *testing.T) {
		msgs, err := f.svc.GetMessages(f.ctx, f.owner, chat.ID, 1, 100)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "mensaje 1", msgs[0].Content)
		assert.Equal(t, "mensaje 3", msgs[2].Content)
	})

	t.Run("Paginates", func(t *testing.T) {
		msgs, err := f.svc.GetMessages(f.ctx, f.consumer, chat.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "mensaje 3", msgs[0].Content)
	})

	t.Run("NonParticipant", func(t *testing.T) {
		_, err := f.svc.GetMessages(f.ctx, f.stranger, chat.ID, 1, 100)
		assert.True(t, domain.IsUnauthorized(err))
	})
}
