package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/errors"
	"github.com/johnquangdev/meetly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetly/pkg/config"
)

// otpBurst is how many OTP requests a client may fire back to back
const otpBurst = 3

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	healthHandler   *Health
	meetingHandler  *Meeting
	feedbackHandler *Feedback
	otpHandler      *OTP
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *Health,
	meetingHandler *Meeting,
	feedbackHandler *Feedback,
	otpHandler *OTP,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		healthHandler:   healthHandler,
		meetingHandler:  meetingHandler,
		feedbackHandler: feedbackHandler,
		otpHandler:      otpHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = rt.errorHandler

	e.GET("/", rt.healthHandler.Root)
	e.HEAD("/", rt.healthHandler.RootHead)
	e.GET("/health", rt.healthHandler.Check)

	// API v1 group
	v1 := e.Group("/api/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupFeedbackRoutes(v1)
	rt.setupOTPRoutes(v1)
}

// errorHandler renders errors that escape handlers and middleware, such as
// unknown routes and recovered panics, in the same body as HandleError
func (rt *Router) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if werr := HandleError(rt.logger, c, err); werr != nil && rt.logger != nil {
		rt.logger.Error("http.error_handler.write_failed", zap.Error(werr))
	}
}

// setupMeetingRoutes configures analysis, history and sharing routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.POST("/analyze", rt.meetingHandler.Analyze)
	g.POST("/analyze/upload", rt.meetingHandler.AnalyzeUpload)

	g.GET("/meetings", rt.meetingHandler.ListMeetings)
	g.GET("/meetings/:id", rt.meetingHandler.GetMeeting)

	g.POST("/share/:id", rt.meetingHandler.ShareMeeting)
	g.GET("/shared/:token", rt.meetingHandler.GetShared)
}

// setupFeedbackRoutes configures feedback routes
func (rt *Router) setupFeedbackRoutes(g *echo.Group) {
	g.POST("/feedback", rt.feedbackHandler.Submit)
	g.GET("/feedbacks", rt.feedbackHandler.List)
}

// setupOTPRoutes configures rate limited OTP routes
func (rt *Router) setupOTPRoutes(g *echo.Group) {
	limited := func(c echo.Context) error {
		return HandleError(rt.logger, c, errors.ErrRateLimited())
	}
	limit := middleware.RateLimit(rt.cfg.OTP.RateLimit, otpBurst, limited)

	g.POST("/send_otp", rt.otpHandler.Send, limit)
	g.POST("/verify_otp", rt.otpHandler.Verify, limit)
}
