package feedback

import "time"

// SubmitRequest represents a feedback submission
type SubmitRequest struct {
	UserEmail string `json:"user_email" validate:"omitempty,email,max=255"`
	Message   string `json:"message" validate:"max=5000"`
}

// Item represents stored feedback in list responses
type Item struct {
	ID        uint      `json:"id"`
	UserEmail *string   `json:"user_email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
