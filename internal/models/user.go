package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// User represents an account created through a third-party identity provider
type User struct {
	ID            int64
	Email         string
	Name          string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Initials returns up to two initials from the user's display name
func (u *User) Initials() string {
	if u == nil {
		return "?"
	}
	return Initials(u.Name)
}

// Initials takes the first letter of the first two words of name
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(r)
		count++
		if count == 2 {
			break
		}
	}
	if count == 0 {
		return "?"
	}
	return b.String()
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
