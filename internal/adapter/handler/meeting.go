package handler

import (
	stdErrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/errors"
	dtomeeting "github.com/johnquangdev/meetly/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetly/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meetly/internal/usecase/meeting"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Meeting handles meeting analysis and retrieval HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, maxUploadBytes int64, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Analyze handles POST /analyze
// @Summary      Analyze a transcript
// @Description  Summarises a pasted transcript, extracts action items, decisions and sentiment, then stores the meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.AnalyzeRequest   true  "Transcript to analyse"
// @Success      200      {object}  meeting.AnalyzeResponse  "Analysis result"
// @Failure      400      {object}  map[string]interface{}   "Empty transcript or invalid payload"
// @Failure      500      {object}  map[string]interface{}   "Analysis failed"
// @Router       /analyze [post]
func (h *Meeting) Analyze(c echo.Context) error {
	var req dtomeeting.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.meetingService.Analyze(c.Request().Context(), meetingUsecase.AnalyzeInput{
		Transcript: req.Transcript,
		Title:      req.Title,
		Date:       req.Date,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalyzeResponse(view))
}

// AnalyzeUpload handles POST /analyze/upload
// @Summary      Analyze an uploaded transcript or recording
// @Description  Accepts .txt, .vtt, .srt or an audio recording as multipart field "file"
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Transcript or recording"
// @Param        title  formData  string  false  "Meeting title"
// @Param        date   formData  string  false  "Meeting date"
// @Success      200    {object}  meeting.AnalyzeResponse  "Analysis result"
// @Failure      400    {object}  map[string]interface{}   "Missing file or empty transcript"
// @Failure      413    {object}  map[string]interface{}   "File too large"
// @Failure      415    {object}  map[string]interface{}   "Unsupported file type"
// @Failure      503    {object}  map[string]interface{}   "Transcription not configured"
// @Router       /analyze/upload [post]
func (h *Meeting) AnalyzeUpload(c echo.Context) error {
	if h.maxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxUploadBytes+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			return HandleError(h.logger, c, errors.ErrUploadTooLarge(h.maxUploadBytes))
		}
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrUploadTooLarge(h.maxUploadBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrProcessingFailed(err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrProcessingFailed(err))
	}

	input := meetingUsecase.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
		Title:       strings.TrimSpace(c.FormValue("title")),
	}
	if date := strings.TrimSpace(c.FormValue("date")); date != "" {
		input.Date = &date
	}

	view, err := h.meetingService.AnalyzeUpload(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalyzeResponse(view))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Returns the most recent meetings with a short summary preview
// @Tags         Meetings
// @Produce      json
// @Param        limit  query     int  false  "Maximum meetings to return (1-200)"  default(50)
// @Success      200    {object}  meeting.ListMeetingsResponse
// @Failure      400    {object}  map[string]interface{}  "Invalid limit"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	limit, err := queryLimit(c, defaultListLimit, maxListLimit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetingService.List(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list meetings", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting id"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.meetingService.Get(c.Request().Context(), id)
	if err != nil {
		return h.notFoundOr(c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(view))
}

// ShareMeeting handles POST /share/:id
// @Summary      Create a share link
// @Description  Issues a signed, expiring read-only link for a meeting
// @Tags         Sharing
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.ShareResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /share/{id} [post]
func (h *Meeting) ShareMeeting(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	link, err := h.meetingService.Share(c.Request().Context(), id)
	if err != nil {
		return h.notFoundOr(c, err)
	}

	return HandleSuccess(h.logger, c, &dtomeeting.ShareResponse{
		ShareURL:  link.URL,
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
	})
}

// GetShared handles GET /shared/:token
// @Summary      Open a shared meeting
// @Tags         Sharing
// @Produce      json
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  meeting.MeetingResponse
// @Failure      404    {object}  map[string]interface{}  "Invalid link"
// @Failure      410    {object}  map[string]interface{}  "Link expired"
// @Router       /shared/{token} [get]
func (h *Meeting) GetShared(c echo.Context) error {
	view, err := h.meetingService.GetShared(c.Request().Context(), c.Param("token"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(view))
}

func (h *Meeting) notFoundOr(c echo.Context, err error) error {
	appErr := toAppError(err)
	if appErr.Code == errors.ErrorCode_MEETING_NOT_FOUND {
		appErr = errors.ErrMeetingNotFound(c.Param("id"))
	}
	return HandleError(h.logger, c, appErr)
}
