package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/errors"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
	"github.com/johnquangdev/meetly/pkg/ai"
	"github.com/johnquangdev/meetly/pkg/validator"
)

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	// Detail mirrors Message for clients that read FastAPI style errors
	Detail string `json:"detail,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request, then the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as a 200 JSON response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleStatus(logger, c, http.StatusOK, data)
}

// HandleStatus writes data as JSON with the given status code
func HandleStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	info := ""
	if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
		Detail:  appErr.Message,
	}
	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps use case failures onto the client facing error set
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var he *echo.HTTPError
	if stdErrors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return errors.ErrNotFound("Route")
		}
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return errors.AppError{Raw: err, HTTPCode: he.Code, Code: errors.ErrorCode_INVALID_PAYLOAD, Message: msg}
	}

	var statusErr *ai.StatusError
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptEmpty):
		return errors.ErrTranscriptEmpty()
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedUpload):
		return errors.ErrUnsupportedUpload(strings.TrimPrefix(err.Error(), usecaseErrors.ErrUnsupportedUpload.Error()+": "))
	case stdErrors.Is(err, usecaseErrors.ErrTranscriberMissing):
		return errors.ErrTranscriptionUnavailable()
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrShareTokenExpired):
		return errors.ErrShareLinkExpired()
	case stdErrors.Is(err, usecaseErrors.ErrShareTokenInvalid):
		return errors.ErrShareLinkInvalid()
	case stdErrors.Is(err, usecaseErrors.ErrFeedbackEmpty):
		return errors.ErrFeedbackEmpty()
	case stdErrors.Is(err, usecaseErrors.ErrOTPNotFound):
		return errors.ErrOTPNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrOTPExpired):
		return errors.ErrOTPExpired()
	case stdErrors.Is(err, usecaseErrors.ErrOTPInvalid):
		return errors.ErrOTPInvalid()
	case stdErrors.Is(err, usecaseErrors.ErrOTPSendFailed):
		return errors.ErrOTPSendFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrOTPStoreFailed):
		return errors.ErrCacheFailed("otp", err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionFailed):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.As(err, &statusErr):
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return errors.ErrAIQuotaExceeded()
		case statusErr.StatusCode >= http.StatusInternalServerError:
			return errors.ErrAIServiceUnavailable(statusErr.Provider)
		}
		return errors.ErrExternalAPIFailed(statusErr.Provider, err)
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisFailed):
		return errors.ErrAIAnalysisFailed(err)
	}
	return errors.ErrInternal(err)
}

// bindAndValidate binds the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrValidationFailed(validator.Describe(err))
	}
	return nil
}

// parseID reads a positive numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrInvalidMeetingID(raw)
	}
	return uint(id), nil
}

// queryLimit reads ?limit= clamped to [1, max], defaulting to def
func queryLimit(c echo.Context, def, max int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrInvalidArgument(fmt.Sprintf("limit must be an integer, got %q", raw))
	}
	switch {
	case n < 1:
		return 1, nil
	case n > max:
		return max, nil
	}
	return n, nil
}
