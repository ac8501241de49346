package domain

import "time"

// Notification is an in-app message created when a request or rental
// changes state. DedupeKey is a UUID assigned at creation so clients
// polling the list endpoint can deduplicate across pages.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	DedupeKey  string            `json:"dedupe_key"`
	IsRead     bool              `json:"is_read"`
	CreatedAt  time.Time         `json:"created_at"`
}
