package entities

import "time"

// Feedback is a message left by a dashboard user
type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail *string   `gorm:"type:varchar(255)" json:"user_email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Feedback
func (Feedback) TableName() string {
	return "feedback"
}
