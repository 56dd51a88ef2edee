package presenter

import (
	"encoding/json"

	dtofeedback "github.com/johnquangdev/meetly/internal/adapter/dto/feedback"
	dtomeeting "github.com/johnquangdev/meetly/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetly/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meetly/internal/usecase/meeting"
	"github.com/johnquangdev/meetly/pkg/sentiment"
)

// summaryPreviewSize is the number of bullets shown in meeting lists
const summaryPreviewSize = 2

// ToAnalyzeResponse converts an analysed meeting to AnalyzeResponse DTO
func ToAnalyzeResponse(v *meetingUsecase.View) *dtomeeting.AnalyzeResponse {
	if v == nil || v.Meeting == nil {
		return nil
	}
	m := v.Meeting
	return &dtomeeting.AnalyzeResponse{
		Summary:            stringsOrEmpty(m.Summary),
		ActionItems:        actionItemsOrEmpty(m.ActionItems),
		Decisions:          stringsOrEmpty(m.Decisions),
		Sentiment:          rawOrEmpty(m.Sentiment),
		SentimentBreakdown: breakdownOrEmpty(v.Breakdown),
		SentimentGauge:     v.Gauge,
		MeetingID:          m.ID,
	}
}

// ToMeetingResponse converts a meeting view to MeetingResponse DTO
func ToMeetingResponse(v *meetingUsecase.View) *dtomeeting.MeetingResponse {
	if v == nil || v.Meeting == nil {
		return nil
	}
	m := v.Meeting
	return &dtomeeting.MeetingResponse{
		ID:                 m.ID,
		Title:              m.Title,
		Date:               m.Date,
		Transcript:         m.Transcript,
		Summary:            stringsOrEmpty(m.Summary),
		ActionItems:        actionItemsOrEmpty(m.ActionItems),
		Decisions:          stringsOrEmpty(m.Decisions),
		Sentiment:          rawOrEmpty(m.Sentiment),
		SentimentBreakdown: breakdownOrEmpty(v.Breakdown),
		SentimentGauge:     v.Gauge,
		CreatedAt:          m.CreatedAt,
	}
}

// ToMeetingList converts meetings to the list DTO
func ToMeetingList(meetings []*entities.Meeting) *dtomeeting.ListMeetingsResponse {
	items := make([]dtomeeting.MeetingListItem, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, dtomeeting.MeetingListItem{
			ID:             m.ID,
			Title:          m.Title,
			Date:           m.Date,
			SummaryPreview: m.SummaryPreview(summaryPreviewSize),
			CreatedAt:      m.CreatedAt,
		})
	}
	return &dtomeeting.ListMeetingsResponse{Meetings: items}
}

// ToFeedbackList converts feedback entities to DTOs
func ToFeedbackList(items []*entities.Feedback) []dtofeedback.Item {
	out := make([]dtofeedback.Item, 0, len(items))
	for _, f := range items {
		out = append(out, dtofeedback.Item{
			ID:        f.ID,
			UserEmail: f.UserEmail,
			Message:   f.Message,
			CreatedAt: f.CreatedAt,
		})
	}
	return out
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func actionItemsOrEmpty(items []entities.ActionItem) []entities.ActionItem {
	if items == nil {
		return []entities.ActionItem{}
	}
	return items
}

func breakdownOrEmpty(b sentiment.Breakdown) sentiment.Breakdown {
	if b == nil {
		return sentiment.Breakdown{}
	}
	return b
}

func rawOrEmpty(b []byte) json.RawMessage {
	if len(b) == 0 || !json.Valid(b) {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(b)
}
