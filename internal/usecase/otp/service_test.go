package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/johnquangdev/meetly/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
)

type fakeMailer struct {
	to, code string
	err      error
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.code = to, code
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeMailer, *time.Time) {
	t.Helper()
	store := cache.NewMemoryStore(0)
	t.Cleanup(func() { store.Close() })

	m := &fakeMailer{}
	svc := NewService(store, m, 5*time.Minute, 6, nil)
	now := time.Now()
	svc.now = func() time.Time { return now }
	return svc, m, &now
}

func TestSendAndVerify(t *testing.T) {
	svc, m, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Send(ctx, " Ana@Meetly.ai "); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if m.to != "ana@meetly.ai" || len(m.code) != 6 {
		t.Fatalf("unexpected mail to=%q code=%q", m.to, m.code)
	}

	if err := svc.Verify(ctx, "ana@meetly.ai", "000000x"); !errors.Is(err, usecaseErrors.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
	if err := svc.Verify(ctx, "ANA@meetly.ai", m.code); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	// Codes are single use
	if err := svc.Verify(ctx, "ana@meetly.ai", m.code); !errors.Is(err, usecaseErrors.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after use, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc, m, now := newTestService(t)
	ctx := context.Background()

	if err := svc.Send(ctx, "ben@meetly.ai"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	*now = now.Add(5*time.Minute + time.Second)

	if err := svc.Verify(ctx, "ben@meetly.ai", m.code); !errors.Is(err, usecaseErrors.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if err := svc.Verify(ctx, "ben@meetly.ai", m.code); !errors.Is(err, usecaseErrors.ErrOTPNotFound) {
		t.Fatalf("expected expired code to be removed, got %v", err)
	}
}

func TestResendReplacesCode(t *testing.T) {
	svc, m, _ := newTestService(t)
	ctx := context.Background()

	_ = svc.Send(ctx, "cy@meetly.ai")
	first := m.code
	for i := 0; i < 5 && m.code == first; i++ {
		_ = svc.Send(ctx, "cy@meetly.ai")
	}
	if m.code == first {
		t.Skip("random codes collided repeatedly")
	}
	if err := svc.Verify(ctx, "cy@meetly.ai", first); !errors.Is(err, usecaseErrors.ErrOTPInvalid) {
		t.Fatalf("expected old code to be invalid, got %v", err)
	}
}

func TestSendFailure(t *testing.T) {
	svc, m, _ := newTestService(t)
	m.err = errors.New("sendgrid down")

	if err := svc.Send(context.Background(), "dee@meetly.ai"); !errors.Is(err, usecaseErrors.ErrOTPSendFailed) {
		t.Fatalf("expected ErrOTPSendFailed, got %v", err)
	}
	if err := svc.Verify(context.Background(), "dee@meetly.ai", "123456"); !errors.Is(err, usecaseErrors.ErrOTPNotFound) {
		t.Fatalf("unsent code should not verify, got %v", err)
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode(6)
		if err != nil || len(code) != 6 {
			t.Fatalf("bad code %q: %v", code, err)
		}
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Set(context.Context, string, string, time.Duration) error { return b.err }
func (b brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, b.err }
func (b brokenStore) Delete(context.Context, string) error { return b.err }

func TestStoreFailure(t *testing.T) {
	down := errors.New("redis: connection refused")
	svc := NewService(brokenStore{err: down}, &fakeMailer{}, time.Minute, 6, nil)

	err := svc.Send(context.Background(), "eve@meetly.ai")
	if !errors.Is(err, usecaseErrors.ErrOTPStoreFailed) || !errors.Is(err, down) {
		t.Fatalf("expected ErrOTPStoreFailed wrapping the store error, got %v", err)
	}
	err = svc.Verify(context.Background(), "eve@meetly.ai", "123456")
	if !errors.Is(err, usecaseErrors.ErrOTPStoreFailed) {
		t.Fatalf("expected ErrOTPStoreFailed on read, got %v", err)
	}
}
