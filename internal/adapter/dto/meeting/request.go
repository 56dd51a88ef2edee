package meeting

// AnalyzeRequest represents a transcript analysis request
type AnalyzeRequest struct {
	Transcript string  `json:"transcript"`
	Title      string  `json:"title" validate:"max=255"`
	Date       *string `json:"date" validate:"omitempty,max=64"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Limit int `query:"limit"`
}
