package validator

import "testing"

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"notblank"`
}

func TestValidate(t *testing.T) {
	v := New()

	if err := v.Validate(&otpRequest{Email: "a@b.co", Code: "123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Validate(&otpRequest{Email: "nope", Code: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); got != "email must be a valid email; otp is required" {
		t.Fatalf("unexpected message %q", got)
	}
}
