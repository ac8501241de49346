package domain

import "time"

// Rating is a consumer's score for a tool, 1 to 5 with an optional
// comment. A user holds at most one rating per tool; rating again
// overwrites the previous score.
type Rating struct {
	ID        int32      `json:"id"`
	ToolID    int32      `json:"tool_id"`
	UserID    int32      `json:"user_id"`
	Score     float64    `json:"rating"`
	Comment   *string    `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// RatingStats aggregates a tool's ratings for its listing page.
// Distribution is keyed by whole star 1..5.
type RatingStats struct {
	TotalRatings  int32         `json:"total_ratings"`
	AverageRating float64       `json:"average_rating"`
	Distribution  map[int]int32 `json:"rating_distribution"`
}
