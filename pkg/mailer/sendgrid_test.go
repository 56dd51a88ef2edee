package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meetly/pkg/config"
)

type mailSendBody struct {
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	From struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"from"`
	Subject string `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (b mailSendBody) content(kind string) string {
	for _, c := range b.Content {
		if c.Type == kind {
			return c.Value
		}
	}
	return ""
}

func newTestClient(url string) *SendGridClient {
	client := NewSendGridClient(&config.EmailConfig{SendGridAPIKey: "sg-key", SendGridURL: url, From: "no-reply@meetly.ai", FromName: "Meetly.AI Dashboard"})
	client.backoff = func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3)
	}
	return client
}

func TestSendOTP_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sg-key" {
			t.Errorf("unexpected authorization %q", got)
		}
		var payload mailSendBody
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		if len(payload.Personalizations) != 1 || payload.Personalizations[0].To[0].Email != "dev@meetly.ai" {
			t.Errorf("unexpected recipient %+v", payload.Personalizations)
		}
		if payload.From.Email != "no-reply@meetly.ai" || payload.From.Name != "Meetly.AI Dashboard" || payload.Subject != otpSubject {
			t.Errorf("unexpected envelope %+v %q", payload.From, payload.Subject)
		}
		html := payload.content("text/html")
		if !strings.Contains(html, "482913") || !strings.Contains(html, "5 minutes") {
			t.Errorf("unexpected html body %s", html)
		}
		if !strings.Contains(payload.content("text/plain"), "482913") {
			t.Errorf("missing plain text body %+v", payload.Content)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	if err := newTestClient(ts.URL).SendOTP(context.Background(), "dev@meetly.ai", "482913", 5*time.Minute); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
}

func TestSendOTP_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	if err := newTestClient(ts.URL).SendOTP(context.Background(), "dev@meetly.ai", "1", time.Minute); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestSendOTP_Failure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"message":"sender not verified"}]}`))
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).SendOTP(context.Background(), "dev@meetly.ai", "1", time.Minute)
	if err == nil || !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "sender not verified") {
		t.Fatalf("expected 403 error, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}

	if err := NewSendGridClient(&config.EmailConfig{}).SendOTP(context.Background(), "a@b.co", "1", time.Minute); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestHumanDuration(t *testing.T) {
	cases := map[time.Duration]string{
		5 * time.Minute:  "5 minutes",
		time.Minute:      "1 minute",
		20 * time.Second: "20 seconds",
	}
	for d, want := range cases {
		if got := humanDuration(d); got != want {
			t.Errorf("humanDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
