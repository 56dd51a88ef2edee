package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/errors"
	"github.com/johnquangdev/meetly/internal/adapter/dto/common"
	dtootp "github.com/johnquangdev/meetly/internal/adapter/dto/otp"
)

// OTPService mails and checks one-time passwords
type OTPService interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// OTP handles email one-time password requests
type OTP struct {
	otpService OTPService
	logger     *zap.Logger
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpService OTPService, logger *zap.Logger) *OTP {
	return &OTP{otpService: otpService, logger: logger}
}

// Send handles POST /send_otp
// @Summary      Send a verification code
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      otp.SendRequest  true  "Email to verify"
// @Success      200      {object}  common.StatusResponse
// @Failure      400      {object}  map[string]interface{}  "Email is required"
// @Failure      429      {object}  map[string]interface{}  "Too many requests"
// @Failure      500      {object}  map[string]interface{}  "Failed to send OTP email"
// @Router       /send_otp [post]
func (h *OTP) Send(c echo.Context) error {
	var req dtootp.SendRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return HandleError(h.logger, c, errors.ErrOTPEmailRequired())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	if err := h.otpService.Send(c.Request().Context(), email); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.Success(fmt.Sprintf("OTP sent to %s", email)))
}

// Verify handles POST /verify_otp
// @Summary      Verify a code
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      otp.VerifyRequest  true  "Email and code"
// @Success      200      {object}  common.StatusResponse
// @Failure      400      {object}  map[string]interface{}  "Missing, expired or invalid code"
// @Router       /verify_otp [post]
func (h *OTP) Verify(c echo.Context) error {
	var req dtootp.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.OTP == "" {
		return HandleError(h.logger, c, errors.ErrOTPFieldsRequired())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	if err := h.otpService.Verify(c.Request().Context(), email, string(req.OTP)); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.Success("OTP verified successfully."))
}
