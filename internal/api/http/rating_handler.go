package http

import (
	"net/http"

	"kerramientas-backend/internal/service"
)

type RatingHandler struct {
	ratingSvc service.RatingService
}

func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

type rateToolBody struct {
	Score   float64 `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	toolID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body rateToolBody
	if !decodeBody(w, r, &body) {
		return
	}

	rating, err := h.ratingSvc.RateTool(r.Context(), userID, toolID, body.Score, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

func (h *RatingHandler) ListForTool(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ratings, err := h.ratingSvc.ListToolRatings(r.Context(), toolID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *RatingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.ratingSvc.GetToolStats(r.Context(), toolID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	ratingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.ratingSvc.DeleteRating(r.Context(), userID, ratingID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
