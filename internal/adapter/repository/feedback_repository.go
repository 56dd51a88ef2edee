package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	"github.com/johnquangdev/meetly/internal/domain/repositories"
)

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entities.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Feedback, error) {
	var items []*entities.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
