package errors

import "errors"

// Meeting errors
var (
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrTranscriptEmpty     = errors.New("transcript is empty")
	ErrUnsupportedUpload   = errors.New("unsupported upload type")
	ErrTranscriberMissing  = errors.New("audio transcription not configured")
	ErrAnalysisFailed      = errors.New("analysis failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// Share link errors
var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenExpired = errors.New("share token expired")
)

// Feedback errors
var (
	ErrFeedbackEmpty = errors.New("feedback message is empty")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("no otp for email")
	ErrOTPExpired     = errors.New("otp expired")
	ErrOTPInvalid     = errors.New("otp invalid")
	ErrOTPSendFailed  = errors.New("failed to send otp")
	ErrOTPStoreFailed = errors.New("otp store unavailable")
)
