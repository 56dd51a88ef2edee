package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
)

type fakeRepo struct {
	items []*entities.Feedback
	err   error
}

func (r *fakeRepo) Create(_ context.Context, f *entities.Feedback) error {
	if r.err != nil {
		return r.err
	}
	f.ID = uint(len(r.items) + 1)
	r.items = append(r.items, f)
	return nil
}

func (r *fakeRepo) ListRecent(_ context.Context, limit int) ([]*entities.Feedback, error) {
	if limit > len(r.items) {
		limit = len(r.items)
	}
	return r.items[:limit], nil
}

func TestSubmit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	fb, err := svc.Submit(context.Background(), " ana@meetly.ai ", "Love the gauge")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if fb.ID != 1 || fb.UserEmail == nil || *fb.UserEmail != "ana@meetly.ai" {
		t.Fatalf("unexpected feedback %+v", fb)
	}

	fb, err = svc.Submit(context.Background(), "", "Anonymous note")
	if err != nil || fb.UserEmail != nil {
		t.Fatalf("expected anonymous feedback, got %+v %v", fb, err)
	}

	if _, err := svc.Submit(context.Background(), "a@b.co", "   "); !errors.Is(err, usecaseErrors.ErrFeedbackEmpty) {
		t.Fatalf("expected ErrFeedbackEmpty, got %v", err)
	}

	repo.err = errors.New("disk full")
	if _, err := svc.Submit(context.Background(), "", "x"); err == nil {
		t.Fatal("expected repository error")
	}
}
