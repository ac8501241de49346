package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusReturned  RentalStatus = "returned"
	RentalStatusOverdue   RentalStatus = "overdue"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental is the owner-facing loan record for a tool. It carries a
// simpler status set than the request lifecycle: pending -> active ->
// returned, with pending -> cancelled and active -> overdue (flipped by
// the nightly job) as side exits.
//
// ActualReturnDate is set exactly when status becomes returned.
type Rental struct {
	ID               int32        `json:"id"`
	ToolID           int32        `json:"tool_id"`
	UserID           int32        `json:"user_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	ActualReturnDate *string      `json:"actual_return_date,omitempty"`
	TotalPrice       float64      `json:"total_price"`
	Status           RentalStatus `json:"status"`
	Notes            *string      `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        *time.Time   `json:"updated_at"`
}
