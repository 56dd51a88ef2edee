package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	"github.com/johnquangdev/meetly/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
)

// Service handles dashboard feedback
type Service struct {
	repo repositories.FeedbackRepository
}

// NewService creates a new feedback service
func NewService(repo repositories.FeedbackRepository) *Service {
	return &Service{repo: repo}
}

// Submit stores a feedback message. Blank messages are rejected.
func (s *Service) Submit(ctx context.Context, userEmail, message string) (*entities.Feedback, error) {
	if strings.TrimSpace(message) == "" {
		return nil, usecaseErrors.ErrFeedbackEmpty
	}

	fb := &entities.Feedback{Message: message}
	if email := strings.TrimSpace(userEmail); email != "" {
		fb.UserEmail = &email
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return fb, nil
}

// List returns feedback newest first
func (s *Service) List(ctx context.Context, limit int) ([]*entities.Feedback, error) {
	return s.repo.ListRecent(ctx, limit)
}
