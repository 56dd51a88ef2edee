package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// ShareClaims represents the claims carried by a public meeting share link
type ShareClaims struct {
	MeetingID uint   `json:"meeting_id"`
	ShareID   string `json:"share_id"`
	jwt.RegisteredClaims
}
