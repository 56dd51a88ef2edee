package repositories

import (
	"context"

	"github.com/johnquangdev/meetly/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create stores a new meeting and fills its ID and CreatedAt
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID.
	// Returns entities.ErrMeetingNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entities.Meeting, error)

	// ListRecent retrieves the newest meetings first
	ListRecent(ctx context.Context, limit int) ([]*entities.Meeting, error)

	// Ping checks the underlying store is reachable
	Ping(ctx context.Context) error
}
