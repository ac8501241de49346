package http

import (
	"net/http"

	"kerramientas-backend/internal/service"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

type startChatBody struct {
	ToolID int32 `json:"tool_id"`
}

func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var body startChatBody
	if !decodeBody(w, r, &body) {
		return
	}

	chat, err := h.chatSvc.StartChat(r.Context(), userID, body.ToolID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	chats, err := h.chatSvc.ListChats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

type sendMessageBody struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	chatID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body sendMessageBody
	if !decodeBody(w, r, &body) {
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), userID, chatID, body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	chatID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 100)

	messages, err := h.chatSvc.GetMessages(r.Context(), userID, chatID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
