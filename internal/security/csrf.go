package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
)

// CSRFHeader carries the token on state-changing requests
const CSRFHeader = "X-CSRF-Token"

var ErrMissingSessionID = errors.New("session ID is required")

// CSRFGenerator derives CSRF tokens from the session ID with HMAC-SHA256.
// No server-side token storage is needed, so replicas sharing the secret agree.
type CSRFGenerator struct {
	secret []byte
}

// NewCSRFGenerator creates a generator. An empty secret is replaced with a
// random one, which invalidates tokens on restart.
func NewCSRFGenerator(secret string) *CSRFGenerator {
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("failed to generate CSRF secret: %v", err)
		}
		log.Println("CSRF_SECRET not set, using a random secret")
		return &CSRFGenerator{secret: buf}
	}
	return &CSRFGenerator{secret: []byte(secret)}
}

// GenerateToken returns the CSRF token for the given session ID
func (g *CSRFGenerator) GenerateToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrMissingSessionID
	}
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidateToken reports whether token is the valid CSRF token for sessionID
func (g *CSRFGenerator) ValidateToken(sessionID, token string) bool {
	expected, err := g.GenerateToken(sessionID)
	if err != nil || token == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(token))
}
