package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/errors"
	"github.com/johnquangdev/meetly/internal/adapter/dto/common"
	dtofeedback "github.com/johnquangdev/meetly/internal/adapter/dto/feedback"
	"github.com/johnquangdev/meetly/internal/adapter/presenter"
	"github.com/johnquangdev/meetly/internal/domain/entities"
)

// FeedbackService stores and lists user feedback
type FeedbackService interface {
	Submit(ctx context.Context, userEmail, message string) (*entities.Feedback, error)
	List(ctx context.Context, limit int) ([]*entities.Feedback, error)
}

// Feedback handles feedback HTTP requests
type Feedback struct {
	feedbackService FeedbackService
	logger          *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService FeedbackService, logger *zap.Logger) *Feedback {
	return &Feedback{feedbackService: feedbackService, logger: logger}
}

// Submit handles POST /feedback
// @Summary      Submit feedback
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        request  body      feedback.SubmitRequest  true  "Feedback"
// @Success      200      {object}  common.StatusResponse
// @Failure      400      {object}  map[string]interface{}  "Empty message"
// @Failure      500      {object}  map[string]interface{}  "Error saving feedback"
// @Router       /feedback [post]
func (h *Feedback) Submit(c echo.Context) error {
	var req dtofeedback.SubmitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if _, err := h.feedbackService.Submit(c.Request().Context(), req.UserEmail, req.Message); err != nil {
		if appErr := toAppError(err); appErr.Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrFeedbackSaveFailed(err))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.Success("Feedback received successfully."))
}

// List handles GET /feedbacks
// @Summary      List feedback
// @Tags         Feedback
// @Produce      json
// @Param        limit  query  int  false  "Maximum entries to return (1-200)"  default(50)
// @Success      200    {array}  feedback.Item
// @Router       /feedbacks [get]
func (h *Feedback) List(c echo.Context) error {
	limit, err := queryLimit(c, defaultListLimit, maxListLimit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.feedbackService.List(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list feedback", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToFeedbackList(items))
}
