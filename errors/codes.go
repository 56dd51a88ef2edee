package errors

import "strconv"

// ErrorCode identifies an application error on the wire
type ErrorCode int

const (
	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1007
	ErrorCode_RATE_LIMITED     ErrorCode = 1008

	// Meetings
	ErrorCode_MEETING_NOT_FOUND   ErrorCode = 2000
	ErrorCode_TRANSCRIPT_EMPTY    ErrorCode = 2001
	ErrorCode_UNSUPPORTED_UPLOAD  ErrorCode = 2002
	ErrorCode_SHARE_LINK_INVALID  ErrorCode = 2003
	ErrorCode_SHARE_LINK_EXPIRED  ErrorCode = 2004
	ErrorCode_FEEDBACK_EMPTY      ErrorCode = 2005
	ErrorCode_PROCESSING_FAILED   ErrorCode = 2006
	ErrorCode_UPLOAD_TOO_LARGE    ErrorCode = 2007
	ErrorCode_TRANSCRIPTION_UNSET ErrorCode = 2008

	// OTP
	ErrorCode_OTP_NOT_FOUND   ErrorCode = 3000
	ErrorCode_OTP_EXPIRED     ErrorCode = 3001
	ErrorCode_OTP_INVALID     ErrorCode = 3002
	ErrorCode_OTP_SEND_FAILED ErrorCode = 3003

	// AI
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 4000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 4002
	ErrorCode_AI_QUOTA_EXCEEDED       ErrorCode = 4003

	// Integrations
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5002

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 6001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_RATE_LIMITED:                    "RATE_LIMITED",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_TRANSCRIPT_EMPTY:                "TRANSCRIPT_EMPTY",
	ErrorCode_UNSUPPORTED_UPLOAD:              "UNSUPPORTED_UPLOAD",
	ErrorCode_SHARE_LINK_INVALID:              "SHARE_LINK_INVALID",
	ErrorCode_SHARE_LINK_EXPIRED:              "SHARE_LINK_EXPIRED",
	ErrorCode_FEEDBACK_EMPTY:                  "FEEDBACK_EMPTY",
	ErrorCode_PROCESSING_FAILED:               "PROCESSING_FAILED",
	ErrorCode_UPLOAD_TOO_LARGE:                "UPLOAD_TOO_LARGE",
	ErrorCode_TRANSCRIPTION_UNSET:             "TRANSCRIPTION_UNSET",
	ErrorCode_OTP_NOT_FOUND:                   "OTP_NOT_FOUND",
	ErrorCode_OTP_EXPIRED:                     "OTP_EXPIRED",
	ErrorCode_OTP_INVALID:                     "OTP_INVALID",
	ErrorCode_OTP_SEND_FAILED:                 "OTP_SEND_FAILED",
	ErrorCode_AI_ANALYSIS_FAILED:              "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:               "AI_QUOTA_EXCEEDED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "CODE_" + strconv.Itoa(int(c))
}
