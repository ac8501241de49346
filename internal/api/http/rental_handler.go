package http

import (
	"net/http"

	"kerramientas-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalBody struct {
	ToolID    int32   `json:"tool_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Notes     *string `json:"notes,omitempty"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var body createRentalBody
	if !decodeBody(w, r, &body) {
		return
	}

	rt, err := h.rentalSvc.CreateRental(r.Context(), userID, body.ToolID, body.StartDate, body.EndDate, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *RentalHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rt, err := h.rentalSvc.ActivateRental(r.Context(), userID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type returnRentalBody struct {
	ActualReturnDate string  `json:"actual_return_date"`
	Notes            *string `json:"notes,omitempty"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body returnRentalBody
	if !decodeBody(w, r, &body) {
		return
	}

	rt, err := h.rentalSvc.ReturnRental(r.Context(), userID, rentalID, body.ActualReturnDate, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rt, err := h.rentalSvc.CancelRental(r.Context(), userID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.rentalSvc.ListMyRentals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.rentalSvc.ListActiveRentals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}
