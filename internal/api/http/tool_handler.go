package http

import (
	"net/http"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/service"
)

type ToolHandler struct {
	toolSvc service.ToolService
}

func NewToolHandler(toolSvc service.ToolService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc}
}

type createToolBody struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	DailyPrice  float64 `json:"daily_price"`
	ImageURL    string  `json:"image_url"`
}

func (h *ToolHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var body createToolBody
	if !decodeBody(w, r, &body) {
		return
	}

	tool := &domain.Tool{
		OwnerID:     userID,
		Name:        body.Name,
		Brand:       body.Brand,
		Model:       body.Model,
		Description: body.Description,
		DailyPrice:  body.DailyPrice,
		ImageURL:    body.ImageURL,
	}
	if err := h.toolSvc.AddTool(r.Context(), tool); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tool)
}

func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tool, err := h.toolSvc.GetTool(r.Context(), toolID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (h *ToolHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	tools, err := h.toolSvc.ListMyTools(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tools)
}
