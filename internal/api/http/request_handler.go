package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/service"
)

type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

type createRequestBody struct {
	ToolID      int32   `json:"tool_id"`
	OwnerID     int32   `json:"owner_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalAmount float64 `json:"total_amount"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var body createRequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := h.requestSvc.CreateRequest(r.Context(), userID, body.ToolID, body.OwnerID, body.StartDate, body.EndDate, body.TotalAmount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	requests, err := h.requestSvc.ListMyRequests(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	requests, err := h.requestSvc.ListOwnerRequests(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	userID, requestID, ok := h.identify(w, r)
	if !ok {
		return
	}

	role := domain.RoleConsumer
	if r.URL.Query().Get("role") == string(domain.RoleOwner) {
		role = domain.RoleOwner
	}

	detail, err := h.requestSvc.GetRequestDetail(r.Context(), userID, requestID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *RequestHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.ConfirmRequest)
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.RejectRequest)
}

type payRequestBody struct {
	YapeCode string `json:"yape_code"`
}

func (h *RequestHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, requestID, ok := h.identify(w, r)
	if !ok {
		return
	}
	var body payRequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := h.requestSvc.PayRequest(r.Context(), userID, requestID, body.YapeCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) ConfirmReception(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.ConfirmReception)
}

func (h *RequestHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.MarkReturned)
}

func (h *RequestHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.ConfirmReturn)
}

func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestSvc.CancelRequest)
}

// transition runs a body-less transition operation identified only by
// the acting user and the request id.
func (h *RequestHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, requestID int32) (*domain.Request, error)) {
	userID, requestID, ok := h.identify(w, r)
	if !ok {
		return
	}
	req, err := op(r.Context(), userID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) identify(w http.ResponseWriter, r *http.Request) (int32, int32, bool) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return 0, 0, false
	}
	requestID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return 0, 0, false
	}
	return userID, requestID, true
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return int32(id), nil
}
