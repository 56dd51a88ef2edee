package otp

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SendRequest asks for a code to be mailed
type SendRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// VerifyRequest checks a mailed code
type VerifyRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	OTP   Code   `json:"otp"`
}

// Code accepts the code as a JSON string or number
type Code string

// UnmarshalJSON implements json.Unmarshaler
func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*c = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}
