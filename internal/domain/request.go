package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusConfirmed RequestStatus = "confirmed"
	RequestStatusPaid      RequestStatus = "paid"
	RequestStatusDelivered RequestStatus = "delivered"
	RequestStatusReturned  RequestStatus = "returned"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCanceled  RequestStatus = "canceled"
)

// requestStages maps each status to its position on the happy path.
// Rejected and canceled sit outside the path and map to -1.
var requestStages = map[RequestStatus]int{
	RequestStatusPending:   0,
	RequestStatusConfirmed: 1,
	RequestStatusPaid:      2,
	RequestStatusDelivered: 3,
	RequestStatusReturned:  4,
	RequestStatusCompleted: 5,
	RequestStatusRejected:  -1,
	RequestStatusCanceled:  -1,
}

// Stage returns the progress index of a status (0-5), or -1 for
// rejected/canceled. Unknown statuses also return -1.
func (s RequestStatus) Stage() int {
	if stage, ok := requestStages[s]; ok {
		return stage
	}
	return -1
}

// IsTerminal reports whether no further transition is legal from s.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestStatusCompleted, RequestStatusRejected, RequestStatusCanceled:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known lifecycle statuses.
func (s RequestStatus) IsValid() bool {
	_, ok := requestStages[s]
	return ok
}

// RequesterRole distinguishes the consumer view from the owner view of
// a request. It selects which listing a user sees; the returned entity
// is the same either way.
type RequesterRole string

const (
	RoleConsumer RequesterRole = "consumer"
	RoleOwner    RequesterRole = "owner"
)

// Request is a consumer's proposal to rent a tool for a date range,
// tracked through the full lifecycle:
//
//	pending -> confirmed -> paid -> delivered -> returned -> completed
//
// with pending -> rejected and pending -> canceled as early exits.
// Requests are never deleted; terminal statuses are kept for history.
type Request struct {
	ID               int32         `json:"id"`
	ToolID           int32         `json:"tool_id"`
	OwnerID          int32         `json:"owner_id"`
	ConsumerID       int32         `json:"consumer_id"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	TotalAmount      float64       `json:"total_amount"`
	Status           RequestStatus `json:"status"`
	YapeApprovalCode *string       `json:"yape_approval_code"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at"`
}

// RequestDetail is a request plus the tool summary shown on detail
// screens.
type RequestDetail struct {
	Request
	ToolInfo *ToolInfo `json:"tool_info,omitempty"`
}

// ToolInfo is the subset of tool fields embedded in a request detail.
type ToolInfo struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	ImageURL string `json:"image_url,omitempty"`
}
