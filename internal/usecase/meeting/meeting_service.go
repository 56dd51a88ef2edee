package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	"github.com/johnquangdev/meetly/internal/domain/repositories"
	aiuse "github.com/johnquangdev/meetly/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
	pkgai "github.com/johnquangdev/meetly/pkg/ai"
	"github.com/johnquangdev/meetly/pkg/jwt"
	"github.com/johnquangdev/meetly/pkg/sentiment"
)

// Options carries the optional collaborators of the meeting service
type Options struct {
	// Transcriber handles audio uploads; nil disables them
	Transcriber pkgai.Transcriber
	// Archiver stores raw uploads; nil disables archiving
	Archiver Archiver
	// Vader scores transcripts whose analysis carried no sentiment; nil keeps neutral
	Vader *sentiment.Vader
	// Synthesizer colors stored and shared meetings
	Synthesizer *sentiment.Synthesizer
	// AnalyzeSynthesizer colors the result of a fresh analysis
	AnalyzeSynthesizer *sentiment.Synthesizer
	PublicBaseURL      string
}

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	ai          aiuse.Service
	tokens      ShareTokens
	opts        Options
	logger      *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	ai aiuse.Service,
	tokens ShareTokens,
	opts Options,
	logger *zap.Logger,
) *MeetingService {
	if opts.Synthesizer == nil {
		opts.Synthesizer = sentiment.NewSynthesizer(sentiment.DefaultPalette)
	}
	if opts.AnalyzeSynthesizer == nil {
		opts.AnalyzeSynthesizer = sentiment.NewSynthesizer(sentiment.AnalyzePalette)
	}
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		meetingRepo: meetingRepo,
		ai:          ai,
		tokens:      tokens,
		opts:        opts,
		logger:      logger,
	}
}

// Analyze summarises a transcript and stores the meeting
func (s *MeetingService) Analyze(ctx context.Context, input AnalyzeInput) (*View, error) {
	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return nil, usecaseErrors.ErrTranscriptEmpty
	}

	analysis, err := s.ai.Analyze(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysisFailed, err)
	}
	if analysis.SentimentMissing && s.opts.Vader != nil {
		if b, err := json.Marshal(s.opts.Vader.Record(transcript)); err == nil {
			analysis.Sentiment = b
		}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = entities.DefaultMeetingTitle
	}

	meeting := &entities.Meeting{
		Title:       title,
		Date:        input.Date,
		Transcript:  transcript,
		Summary:     analysis.Summary,
		ActionItems: analysis.ActionItems,
		Decisions:   analysis.Decisions,
		Sentiment:   analysis.Sentiment,
		SourceFile:  input.SourceFile,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	s.logger.Info("📝 Meeting analysed",
		zap.Uint("meeting_id", meeting.ID),
		zap.Int("summary_items", len(meeting.Summary)),
		zap.Int("action_items", len(meeting.ActionItems)),
		zap.Bool("sentiment_fallback", analysis.SentimentMissing),
	)

	return s.view(meeting, s.opts.AnalyzeSynthesizer), nil
}

// AnalyzeUpload extracts a transcript from an uploaded file, then behaves like Analyze
func (s *MeetingService) AnalyzeUpload(ctx context.Context, input UploadInput) (*View, error) {
	kind := DetectUpload(input.Filename, input.ContentType)

	var transcript string
	switch kind {
	case UploadText, UploadSubtitles:
		text, err := DecodeText(input.Data, kind)
		if err != nil {
			return nil, err
		}
		transcript = text
	case UploadAudio:
		if s.opts.Transcriber == nil {
			return nil, usecaseErrors.ErrTranscriberMissing
		}
		text, err := s.opts.Transcriber.Transcribe(ctx, bytes.NewReader(input.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrTranscriptionFailed, err)
		}
		transcript = text
	default:
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrUnsupportedUpload, input.ContentType)
	}

	if strings.TrimSpace(transcript) == "" {
		return nil, usecaseErrors.ErrTranscriptEmpty
	}

	var sourceFile *string
	if s.opts.Archiver != nil {
		key, err := s.opts.Archiver.Archive(ctx, input.Filename, input.ContentType, input.Data)
		if err != nil {
			s.logger.Warn("⚠️ Failed to archive upload",
				zap.String("filename", input.Filename),
				zap.Error(err),
			)
		} else {
			sourceFile = &key
		}
	}

	title := input.Title
	if strings.TrimSpace(title) == "" {
		title = titleFromFilename(input.Filename)
	}

	return s.Analyze(ctx, AnalyzeInput{
		Transcript: transcript,
		Title:      title,
		Date:       input.Date,
		SourceFile: sourceFile,
	})
}

// List returns the newest meetings first
func (s *MeetingService) List(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// Get retrieves one meeting with its sentiment breakdown
func (s *MeetingService) Get(ctx context.Context, id uint) (*View, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return s.view(meeting, s.opts.Synthesizer), nil
}

// Share issues a signed public link for a meeting
func (s *MeetingService) Share(ctx context.Context, id uint) (*ShareLink, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateShareToken(id)
	if err != nil {
		return nil, err
	}

	return &ShareLink{
		URL:       s.opts.PublicBaseURL + "/shared/" + token,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetShared resolves a share token to its meeting
func (s *MeetingService) GetShared(ctx context.Context, token string) (*View, error) {
	claims, err := s.tokens.ValidateShareToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, usecaseErrors.ErrShareTokenExpired
		}
		return nil, usecaseErrors.ErrShareTokenInvalid
	}
	return s.Get(ctx, claims.MeetingID)
}

// view attaches the sentiment presentation to a stored meeting.
// A sentiment column that cannot be read is treated as having no data.
func (s *MeetingService) view(m *entities.Meeting, synth *sentiment.Synthesizer) *View {
	rec, err := sentiment.ParseRecord(m.Sentiment)
	if err != nil {
		s.logger.Warn("⚠️ Unreadable sentiment on meeting",
			zap.Uint("meeting_id", m.ID),
			zap.Error(err),
		)
		rec = nil
	}

	v := &View{
		Meeting:   m,
		Sentiment: rec,
		Breakdown: synth.Synthesize(rec),
	}
	if g, ok := sentiment.Gauge(rec); ok {
		v.Gauge = &g
	}
	return v
}
