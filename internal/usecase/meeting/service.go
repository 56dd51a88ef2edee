package meeting

import (
	"context"
	"time"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	"github.com/johnquangdev/meetly/pkg/jwt"
	"github.com/johnquangdev/meetly/pkg/sentiment"
)

// Service defines the interface for the meeting use case
type Service interface {
	// Analyze summarises a transcript and stores the meeting
	Analyze(ctx context.Context, input AnalyzeInput) (*View, error)

	// AnalyzeUpload extracts a transcript from an uploaded file, then behaves like Analyze
	AnalyzeUpload(ctx context.Context, input UploadInput) (*View, error)

	// List returns the newest meetings first
	List(ctx context.Context, limit int) ([]*entities.Meeting, error)

	// Get retrieves one meeting with its sentiment breakdown
	Get(ctx context.Context, id uint) (*View, error)

	// Share issues a signed public link for a meeting
	Share(ctx context.Context, id uint) (*ShareLink, error)

	// GetShared resolves a share token to its meeting
	GetShared(ctx context.Context, token string) (*View, error)
}

// AnalyzeInput represents input for analysing a transcript
type AnalyzeInput struct {
	Transcript string
	Title      string
	Date       *string
	SourceFile *string
}

// UploadInput represents an uploaded transcript or recording
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       string
	Date        *string
}

// View is a meeting together with its derived sentiment presentation
type View struct {
	Meeting   *entities.Meeting
	Sentiment *sentiment.Record
	Breakdown sentiment.Breakdown
	// Gauge is the 0-100 dial value; nil when the record has no scalar score
	Gauge *float64
}

// ShareLink is a public read-only link to a meeting
type ShareLink struct {
	URL       string
	Token     string
	ExpiresAt time.Time
}

// Archiver keeps a copy of uploaded files
type Archiver interface {
	Archive(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// ShareTokens issues and verifies share tokens
type ShareTokens interface {
	GenerateShareToken(meetingID uint) (string, time.Time, error)
	ValidateShareToken(token string) (*jwt.ShareClaims, error)
}
