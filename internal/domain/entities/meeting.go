package entities

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultMeetingTitle is used when an analysis request carries no title
const DefaultMeetingTitle = "Untitled Meeting"

// ActionItem is a task extracted from a meeting transcript
type ActionItem struct {
	Assignee *string `json:"assignee"`
	Task     string  `json:"task"`
	Due      *string `json:"due"`
	Context  string  `json:"context"`
}

// Meeting is a stored meeting analysis
type Meeting struct {
	ID          uint                            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string                          `gorm:"type:varchar(255);not null;default:'Untitled Meeting'" json:"title"`
	Date        *string                         `gorm:"type:varchar(64)" json:"date"`
	Transcript  string                          `gorm:"type:text;not null" json:"transcript"`
	Summary     datatypes.JSONSlice[string]     `gorm:"type:jsonb;default:'[]'" json:"summary"`
	ActionItems datatypes.JSONSlice[ActionItem] `gorm:"type:jsonb;default:'[]'" json:"action_items"`
	Decisions   datatypes.JSONSlice[string]     `gorm:"type:jsonb;default:'[]'" json:"decisions"`
	Sentiment   datatypes.JSON                  `gorm:"type:jsonb;default:'{}'" json:"sentiment"`
	SourceFile  *string                         `gorm:"type:varchar(512)" json:"source_file,omitempty"`
	CreatedAt   time.Time                       `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// SummaryPreview returns at most n leading summary bullets
func (m *Meeting) SummaryPreview(n int) []string {
	if len(m.Summary) <= n {
		return append([]string{}, m.Summary...)
	}
	return append([]string{}, m.Summary[:n]...)
}

// Analysis is the structured result extracted from a model completion
type Analysis struct {
	Summary     []string
	ActionItems []ActionItem
	Decisions   []string
	// Sentiment is the sentiment object as returned by the model
	Sentiment datatypes.JSON
	// SentimentMissing marks a completion that carried no sentiment object
	SentimentMissing bool
}
