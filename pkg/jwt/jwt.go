package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when a share token is past its expiry
	ErrTokenExpired = errors.New("share token expired")
	// ErrTokenInvalid is returned for malformed, tampered or foreign tokens
	ErrTokenInvalid = errors.New("share token invalid")
)

// Manager signs and verifies meeting share tokens
type Manager struct {
	secret string
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewManager creates a new share token manager
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: secret,
		expiry: expiry,
		issuer: "meetly",
		now:    time.Now,
	}
}

// GenerateShareToken issues a token granting read access to one meeting.
// It returns the signed token and its expiry time.
func (m *Manager) GenerateShareToken(meetingID uint) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)
	claims := &ShareClaims{
		MeetingID: meetingID,
		ShareID:   uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(meetingID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateShareToken validates a share token and returns its claims
func (m *Manager) ValidateShareToken(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid || claims.MeetingID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// GetExpiry returns the share token lifetime
func (m *Manager) GetExpiry() time.Duration {
	return m.expiry
}
