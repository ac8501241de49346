package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"kerramientas-backend/internal/security"
	"kerramientas-backend/internal/service"
)

// RouterConfig bundles everything the HTTP surface needs.
type RouterConfig struct {
	Tokens         security.TokenManager
	Auth           service.AuthService
	Requests       service.RequestService
	Rentals        service.RentalService
	Tools          service.ToolService
	Notifications  service.NotificationService
	Chats          service.ChatService
	Ratings        service.RatingService
	RequestTimeout time.Duration
}

// NewRouter wires all routes. /api/auth/* is public; everything else
// requires a bearer access token.
func NewRouter(cfg RouterConfig) *mux.Router {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	authHandler := NewAuthHandler(cfg.Auth)
	requestHandler := NewRequestHandler(cfg.Requests)
	rentalHandler := NewRentalHandler(cfg.Rentals)
	toolHandler := NewToolHandler(cfg.Tools)
	noteHandler := NewNotificationHandler(cfg.Notifications)
	chatHandler := NewChatHandler(cfg.Chats)
	ratingHandler := NewRatingHandler(cfg.Ratings)
	authMW := NewAuthMiddleware(cfg.Tokens)

	r := mux.NewRouter()
	r.Use(TimeoutMiddleware(cfg.RequestTimeout))

	public := r.PathPrefix("/api/auth").Subrouter()
	public.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMW.Handler)

	api.HandleFunc("/requests", requestHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/requests/mine", requestHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/requests/owner", requestHandler.ListOwner).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", requestHandler.GetDetail).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}/confirm", requestHandler.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/reject", requestHandler.Reject).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/pay", requestHandler.Pay).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/confirm-reception", requestHandler.ConfirmReception).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/mark-returned", requestHandler.MarkReturned).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/confirm-return", requestHandler.ConfirmReturn).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/cancel", requestHandler.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/mine", rentalHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/rentals/active", rentalHandler.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/activate", rentalHandler.Activate).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/tools", toolHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tools/mine", toolHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}", toolHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}/ratings", ratingHandler.Rate).Methods(http.MethodPost)
	api.HandleFunc("/tools/{id}/ratings", ratingHandler.ListForTool).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}/ratings/stats", ratingHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/ratings/{id}", ratingHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/chats", chatHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/chats", chatHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/chats/{id}/messages", chatHandler.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}/messages", chatHandler.GetMessages).Methods(http.MethodGet)

	api.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}
