package repositories

import (
	"context"

	"github.com/johnquangdev/meetly/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error
	ListRecent(ctx context.Context, limit int) ([]*entities.Feedback, error)
}
