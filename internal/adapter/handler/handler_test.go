package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/meetly/internal/usecase/meeting"
	"github.com/johnquangdev/meetly/pkg/ai"
	"github.com/johnquangdev/meetly/pkg/config"
	"github.com/johnquangdev/meetly/pkg/sentiment"
	"github.com/johnquangdev/meetly/pkg/validator"
)

type fakeMeetings struct {
	analyzeInput meetingUsecase.AnalyzeInput
	uploadInput  meetingUsecase.UploadInput
	listLimit    int
	view         *meetingUsecase.View
	err          error
}

func sampleView() *meetingUsecase.View {
	gauge := 80.0
	label, score := "positive", 0.6
	return &meetingUsecase.View{
		Meeting: &entities.Meeting{
			ID:        7,
			Title:     "Weekly sync",
			Summary:   []string{"Shipped v2", "Planned Q3", "Hired"},
			Sentiment: datatypes.JSON(`{"sentiment":"positive","score":0.6}`),
			CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Breakdown: sentiment.Synthesize(&sentiment.Record{Label: &label, Score: &score}),
		Gauge:     &gauge,
	}
}

func (f *fakeMeetings) Analyze(_ context.Context, in meetingUsecase.AnalyzeInput) (*meetingUsecase.View, error) {
	f.analyzeInput = in
	if f.err != nil {
		return nil, f.err
	}
	return sampleView(), nil
}

func (f *fakeMeetings) AnalyzeUpload(_ context.Context, in meetingUsecase.UploadInput) (*meetingUsecase.View, error) {
	f.uploadInput = in
	if f.err != nil {
		return nil, f.err
	}
	return sampleView(), nil
}

func (f *fakeMeetings) List(_ context.Context, limit int) ([]*entities.Meeting, error) {
	f.listLimit = limit
	return []*entities.Meeting{sampleView().Meeting}, f.err
}

func (f *fakeMeetings) Get(_ context.Context, id uint) (*meetingUsecase.View, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.view != nil {
		return f.view, nil
	}
	return sampleView(), nil
}

func (f *fakeMeetings) Share(_ context.Context, id uint) (*meetingUsecase.ShareLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	token := fmt.Sprintf("tok-%d", id)
	return &meetingUsecase.ShareLink{URL: "http://app/shared/" + token, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeMeetings) GetShared(_ context.Context, token string) (*meetingUsecase.View, error) {
	if f.err != nil {
		return nil, f.err
	}
	return sampleView(), nil
}

type fakeFeedback struct {
	email, message string
	err            error
}

func (f *fakeFeedback) Submit(_ context.Context, email, message string) (*entities.Feedback, error) {
	f.email, f.message = email, message
	if strings.TrimSpace(message) == "" {
		return nil, usecaseErrors.ErrFeedbackEmpty
	}
	return &entities.Feedback{ID: 1, Message: message}, f.err
}

func (f *fakeFeedback) List(context.Context, int) ([]*entities.Feedback, error) {
	return []*entities.Feedback{{ID: 1, Message: "great"}}, nil
}

type fakeOTP struct {
	sentTo   string
	sendErr  error
	verifyEr error
	code     string
}

func (f *fakeOTP) Send(_ context.Context, email string) error {
	f.sentTo = email
	return f.sendErr
}

func (f *fakeOTP) Verify(_ context.Context, email, code string) error {
	f.code = code
	return f.verifyEr
}

type pingFunc func(context.Context) error

func (p pingFunc) Ping(ctx context.Context) error { return p(ctx) }

type testServer struct {
	e        *echo.Echo
	meetings *fakeMeetings
	feedback *fakeFeedback
	otp      *fakeOTP
}

func newTestServer(t *testing.T, dbErr error) *testServer {
	t.Helper()
	logger := zap.NewNop()
	ts := &testServer{meetings: &fakeMeetings{}, feedback: &fakeFeedback{}, otp: &fakeOTP{}}

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.OTP.RateLimit = 0

	ts.e = echo.New()
	ts.e.Validator = validator.New()
	health := NewHealthHandler("test", map[string]Pinger{
		"database": pingFunc(func(context.Context) error { return dbErr }),
		"cache":    nil,
	}, logger)
	NewRouter(cfg, logger, health,
		NewMeetingHandler(ts.meetings, 64, logger),
		NewFeedbackHandler(ts.feedback, logger),
		NewOTPHandler(ts.otp, logger),
	).Setup(ts.e)
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || decode(t, rec)["message"] != "Meetly.AI Backend is running 🚀" {
		t.Fatalf("unexpected root response %d %s", rec.Code, rec.Body.String())
	}
	if rec := ts.do(http.MethodHead, "/", ""); rec.Code != http.StatusOK {
		t.Fatalf("HEAD / returned %d", rec.Code)
	}

	rec = ts.do(http.MethodGet, "/health", "")
	body := decode(t, rec)
	if rec.Code != http.StatusOK || body["status"] != "ok" || body["environment"] != "test" {
		t.Fatalf("unexpected health %d %v", rec.Code, body)
	}

	down := newTestServer(t, fmt.Errorf("connection refused"))
	rec = down.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable || decode(t, rec)["status"] != "degraded" {
		t.Fatalf("expected degraded health, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/analyze", `{"transcript":"Ana: hi","title":"Sync","date":"2025-01-02"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["meeting_id"] != float64(7) {
		t.Fatalf("unexpected meeting id %v", body["meeting_id"])
	}
	breakdown := body["sentiment_breakdown"].([]interface{})
	first := breakdown[0].(map[string]interface{})
	if len(breakdown) != 3 || first["name"] != "Positive" || first["value"] != float64(80) || body["sentiment_gauge"] != float64(80) {
		t.Fatalf("unexpected sentiment fields %v", body)
	}
	if items, ok := body["action_items"].([]interface{}); !ok || len(items) != 0 {
		t.Fatalf("expected empty action_items array, got %v", body["action_items"])
	}
	if ts.meetings.analyzeInput.Title != "Sync" || *ts.meetings.analyzeInput.Date != "2025-01-02" {
		t.Fatalf("input not forwarded: %+v", ts.meetings.analyzeInput)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		body   string
		status int
		detail string
	}{
		{"empty transcript", usecaseErrors.ErrTranscriptEmpty, `{"transcript":" "}`, http.StatusBadRequest, "Transcript is empty."},
		{"bad json", nil, `{"transcript":`, http.StatusBadRequest, "Invalid payload"},
		{"provider quota", fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysisFailed, &ai.StatusError{Provider: "groq", StatusCode: 429}), `{"transcript":"x"}`, http.StatusTooManyRequests, "AI service quota exceeded"},
		{"provider down", fmt.Errorf("%w: boom", usecaseErrors.ErrAnalysisFailed), `{"transcript":"x"}`, http.StatusInternalServerError, "AI analysis failed"},
		{"provider unavailable", fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysisFailed, &ai.StatusError{Provider: "gemini", StatusCode: 503}), `{"transcript":"x"}`, http.StatusServiceUnavailable, "AI service temporarily unavailable"},
		{"provider rejected key", fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysisFailed, &ai.StatusError{Provider: "groq", StatusCode: 401}), `{"transcript":"x"}`, http.StatusBadGateway, "External API call failed: groq"},
		{"transcription failed", fmt.Errorf("%w: timeout", usecaseErrors.ErrTranscriptionFailed), `{"transcript":"x"}`, http.StatusInternalServerError, "Audio transcription failed"},
		{"unexpected", fmt.Errorf("failed to save meeting: disk full"), `{"transcript":"x"}`, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.meetings.err = tc.err
			rec := ts.do(http.MethodPost, "/api/v1/analyze", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if got := decode(t, rec)["detail"]; got != tc.detail {
				t.Fatalf("expected detail %q, got %v", tc.detail, got)
			}
		})
	}
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte(content))
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func TestAnalyzeUpload(t *testing.T) {
	ts := newTestServer(t, nil)

	body, ct := multipartBody(t, "sync.vtt", "WEBVTT\n\nAna: hi", map[string]string{"title": "Sync", "date": "2025-01-02"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/upload", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	in := ts.meetings.uploadInput
	if in.Filename != "sync.vtt" || string(in.Data) != "WEBVTT\n\nAna: hi" || in.Title != "Sync" || in.Date == nil {
		t.Fatalf("upload not forwarded: %+v", in)
	}

	big, ct := multipartBody(t, "big.txt", strings.Repeat("x", 100), nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/analyze/upload", big)
	req.Header.Set(echo.HeaderContentType, ct)
	rec = httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodPost, "/api/v1/analyze/upload", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}

func TestMeetingsListAndGet(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/meetings", "")
	if rec.Code != http.StatusOK || ts.meetings.listLimit != defaultListLimit {
		t.Fatalf("unexpected list %d limit=%d", rec.Code, ts.meetings.listLimit)
	}
	meetings := decode(t, rec)["meetings"].([]interface{})
	preview := meetings[0].(map[string]interface{})["summary_preview"].([]interface{})
	if len(preview) != 2 {
		t.Fatalf("expected 2 preview bullets, got %v", preview)
	}

	ts.do(http.MethodGet, "/api/v1/meetings?limit=1000", "")
	if ts.meetings.listLimit != maxListLimit {
		t.Fatalf("expected clamp to %d, got %d", maxListLimit, ts.meetings.listLimit)
	}
	if rec := ts.do(http.MethodGet, "/api/v1/meetings?limit=abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}

	rec = ts.do(http.MethodGet, "/api/v1/meetings/7", "")
	if rec.Code != http.StatusOK || decode(t, rec)["title"] != "Weekly sync" {
		t.Fatalf("unexpected get %d %s", rec.Code, rec.Body.String())
	}
	if rec := ts.do(http.MethodGet, "/api/v1/meetings/zero", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}

	ts.meetings.err = usecaseErrors.ErrMeetingNotFound
	rec = ts.do(http.MethodGet, "/api/v1/meetings/99", "")
	body := decode(t, rec)
	if rec.Code != http.StatusNotFound || body["detail"] != "Meeting not found." {
		t.Fatalf("unexpected not found %d %v", rec.Code, body)
	}
	if details := body["details"].(map[string]interface{}); details["meeting_id"] != "99" {
		t.Fatalf("expected meeting id detail, got %v", details)
	}
}

func TestGetMeetingWithoutSentiment(t *testing.T) {
	stored := datatypes.JSON(`{}`)
	rec, err := sentiment.ParseRecord(stored)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}

	for name, breakdown := range map[string]sentiment.Breakdown{
		"synthesized": sentiment.Synthesize(rec),
		"unset":       nil,
	} {
		t.Run(name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.meetings.view = &meetingUsecase.View{
				Meeting:   &entities.Meeting{ID: 3, Title: "Quiet call", Sentiment: stored},
				Breakdown: breakdown,
			}

			res := ts.do(http.MethodGet, "/api/v1/meetings/3", "")
			raw := res.Body.String()
			if res.Code != http.StatusOK {
				t.Fatalf("unexpected status %d: %s", res.Code, raw)
			}
			if !strings.Contains(raw, `"sentiment_breakdown":[]`) || !strings.Contains(raw, `"sentiment":{}`) {
				t.Fatalf("expected empty breakdown array and sentiment object, got %s", raw)
			}
			if strings.Contains(raw, "sentiment_gauge") {
				t.Fatalf("gauge must be omitted without a score, got %s", raw)
			}
		})
	}
}

func TestShareRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/share/7", "")
	body := decode(t, rec)
	if rec.Code != http.StatusOK || body["share_url"] != "http://app/shared/tok-7" || body["token"] != "tok-7" {
		t.Fatalf("unexpected share %d %v", rec.Code, body)
	}

	if rec := ts.do(http.MethodGet, "/api/v1/shared/tok-7", ""); rec.Code != http.StatusOK {
		t.Fatalf("unexpected shared status %d", rec.Code)
	}

	ts.meetings.err = usecaseErrors.ErrShareTokenExpired
	if rec := ts.do(http.MethodGet, "/api/v1/shared/old", ""); rec.Code != http.StatusGone {
		t.Fatalf("expected 410, got %d", rec.Code)
	}
	ts.meetings.err = usecaseErrors.ErrShareTokenInvalid
	if rec := ts.do(http.MethodGet, "/api/v1/shared/bad", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFeedbackRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/feedback", `{"user_email":"a@b.co","message":"great"}`)
	body := decode(t, rec)
	if rec.Code != http.StatusOK || body["status"] != "success" || body["message"] != "Feedback received successfully." {
		t.Fatalf("unexpected feedback %d %v", rec.Code, body)
	}

	rec = ts.do(http.MethodPost, "/api/v1/feedback", `{"message":"  "}`)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["detail"] != "Feedback message is empty." {
		t.Fatalf("expected empty feedback error, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodPost, "/api/v1/feedback", `{"user_email":"nope","message":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid email 400, got %d", rec.Code)
	}

	ts.feedback.err = fmt.Errorf("db down")
	rec = ts.do(http.MethodPost, "/api/v1/feedback", `{"message":"x"}`)
	if rec.Code != http.StatusInternalServerError || decode(t, rec)["detail"] != "Error saving feedback" {
		t.Fatalf("expected save failure, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodGet, "/api/v1/feedbacks", "")
	var items []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("unexpected feedback list %s", rec.Body.String())
	}
}

func TestOTPRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/send_otp", `{"email":"a@b.co"}`)
	if rec.Code != http.StatusOK || decode(t, rec)["message"] != "OTP sent to a@b.co" {
		t.Fatalf("unexpected send %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodPost, "/api/v1/send_otp", `{}`)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["detail"] != "Email is required." {
		t.Fatalf("expected email required, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodPost, "/api/v1/verify_otp", `{"email":"a@b.co"}`)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["detail"] != "Email and OTP required." {
		t.Fatalf("expected fields required, got %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodPost, "/api/v1/verify_otp", `{"email":"a@b.co","otp":123456}`)
	if rec.Code != http.StatusOK || ts.otp.code != "123456" {
		t.Fatalf("numeric otp not accepted: %d code=%q", rec.Code, ts.otp.code)
	}

	ts.otp.verifyEr = usecaseErrors.ErrOTPExpired
	rec = ts.do(http.MethodPost, "/api/v1/verify_otp", `{"email":"a@b.co","otp":"123456"}`)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["detail"] != "OTP expired. Please request a new one." {
		t.Fatalf("expected expired, got %d %s", rec.Code, rec.Body.String())
	}

	ts.otp.sendErr = fmt.Errorf("%w: store: dial tcp: refused", usecaseErrors.ErrOTPStoreFailed)
	rec = ts.do(http.MethodPost, "/api/v1/send_otp", `{"email":"a@b.co"}`)
	body := decode(t, rec)
	if rec.Code != http.StatusInternalServerError || body["detail"] != "Cache operation failed: otp" || body["info"] != nil {
		t.Fatalf("expected cache failure without internals, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteUsesErrorBody(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/nope", "")
	body := decode(t, rec)
	if rec.Code != http.StatusNotFound || body["detail"] != "Route not found" || body["code"] != float64(1002) {
		t.Fatalf("unexpected 404 body %d %s", rec.Code, rec.Body.String())
	}
}
