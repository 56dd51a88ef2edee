package meeting

import (
	"encoding/json"
	"time"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	"github.com/johnquangdev/meetly/pkg/sentiment"
)

// AnalyzeResponse represents the result of analysing a transcript
type AnalyzeResponse struct {
	Summary            []string              `json:"summary"`
	ActionItems        []entities.ActionItem `json:"action_items"`
	Decisions          []string              `json:"decisions"`
	Sentiment          json.RawMessage       `json:"sentiment"`
	SentimentBreakdown sentiment.Breakdown   `json:"sentiment_breakdown"`
	SentimentGauge     *float64              `json:"sentiment_gauge,omitempty"`
	MeetingID          uint                  `json:"meeting_id"`
}

// MeetingListItem represents a meeting in list responses
type MeetingListItem struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Date           *string   `json:"date"`
	SummaryPreview []string  `json:"summary_preview"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListMeetingsResponse wraps the meeting list
type ListMeetingsResponse struct {
	Meetings []MeetingListItem `json:"meetings"`
}

// MeetingResponse represents a full meeting
type MeetingResponse struct {
	ID                 uint                  `json:"id"`
	Title              string                `json:"title"`
	Date               *string               `json:"date"`
	Transcript         string                `json:"transcript"`
	Summary            []string              `json:"summary"`
	ActionItems        []entities.ActionItem `json:"action_items"`
	Decisions          []string              `json:"decisions"`
	Sentiment          json.RawMessage       `json:"sentiment"`
	SentimentBreakdown sentiment.Breakdown   `json:"sentiment_breakdown"`
	SentimentGauge     *float64              `json:"sentiment_gauge,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// ShareResponse represents a generated share link
type ShareResponse struct {
	ShareURL  string    `json:"share_url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
