package domain

import "time"

// Tool is a rentable item listed by an owner. DailyPrice feeds the cost
// calculator; IsAvailable is flipped when a rental opens or closes.
type Tool struct {
	ID          int32     `json:"id"`
	OwnerID     int32     `json:"owner_id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Description string    `json:"description,omitempty"`
	DailyPrice  float64   `json:"daily_price"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Info returns the summary embedded in request detail responses.
func (t *Tool) Info() *ToolInfo {
	return &ToolInfo{
		Name:     t.Name,
		Brand:    t.Brand,
		Model:    t.Model,
		ImageURL: t.ImageURL,
	}
}
