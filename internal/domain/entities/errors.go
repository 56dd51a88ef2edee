package entities

import "errors"

// Domain errors
var (
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
)
