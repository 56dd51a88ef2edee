package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/johnquangdev/meetly/pkg/config"
)

const otpSubject = "🔐 Your Meetly.AI Verification Code"

// Mailer delivers one-time passwords
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, expiry time.Duration) error
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<h2 style='color:#4F46E5;'>{{.Brand}}</h2>
<p>Your One-Time Password (OTP) is:</p>
<h3 style='color:#4F46E5;letter-spacing:3px;'>{{.Code}}</h3>
<p>This code will expire in <b>{{.Expiry}}</b>.</p>
<p>Thank you,<br><b>Meetly.AI Team</b></p>
`))

// SendGridClient sends mail through the SendGrid v3 mail/send API
type SendGridClient struct {
	apiKey   string
	host     string
	from     string
	fromName string
	timeout  time.Duration
	backoff  func() backoff.BackOff
}

// NewSendGridClient creates a SendGrid client from the email config
func NewSendGridClient(cfg *config.EmailConfig) *SendGridClient {
	host := strings.TrimRight(cfg.SendGridURL, "/")
	if host == "" {
		host = "https://api.sendgrid.com"
	}
	return &SendGridClient{
		apiKey:   cfg.SendGridAPIKey,
		host:     host,
		from:     cfg.From,
		fromName: cfg.FromName,
		timeout:  15 * time.Second,
		backoff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxElapsedTime = 10 * time.Second
			return backoff.WithMaxRetries(bo, 3)
		},
	}
}

// SendOTP mails a verification code to the given address
func (s *SendGridClient) SendOTP(ctx context.Context, to, code string, expiry time.Duration) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}

	var html bytes.Buffer
	err := otpTemplate.Execute(&html, map[string]string{
		"Brand":  s.fromName,
		"Code":   code,
		"Expiry": humanDuration(expiry),
	})
	if err != nil {
		return fmt.Errorf("failed to render otp email: %w", err)
	}
	plain := fmt.Sprintf("Your One-Time Password (OTP) is: %s\nThis code will expire in %s.", code, humanDuration(expiry))

	msg := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		otpSubject,
		mail.NewEmail("", to),
		plain,
		html.String(),
	)
	return s.send(ctx, mail.GetRequestBody(msg))
}

func (s *SendGridClient) send(ctx context.Context, body []byte) error {
	op := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
		req.Method = rest.Post
		req.Body = body

		resp, err := sendgrid.MakeRequestWithContext(reqCtx, req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("sendgrid request failed: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return statusError(resp)
		default:
			return backoff.Permanent(statusError(resp))
		}
	}

	return backoff.Retry(op, backoff.WithContext(s.backoff(), ctx))
}

func statusError(resp *rest.Response) error {
	body := strings.TrimSpace(resp.Body)
	if len(body) > 2048 {
		body = body[:2048]
	}
	return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, body)
}

// humanDuration renders whole minutes the way the email copy expects ("5 minutes")
func humanDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	switch {
	case minutes <= 0:
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
