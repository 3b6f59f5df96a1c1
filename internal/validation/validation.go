package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest display name kept for a user, in characters
const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateLocation checks that lat/lon are a point on Earth
func ValidateLocation(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return ValidationError{Field: "lat", Message: "latitude must be between -90 and 90"}
	}
	if lon < -180 || lon > 180 {
		return ValidationError{Field: "lon", Message: "longitude must be between -180 and 180"}
	}
	return nil
}

// ValidateQuizLength checks a requested number of questions
func ValidateQuizLength(n, max int) error {
	if n < 1 || n > max {
		return ValidationError{Field: "count", Message: fmt.Sprintf("must be between 1 and %d", max)}
	}
	return nil
}

// NormalizeName collapses whitespace in a display name and caps its length.
// An empty result falls back to the local part of email.
func NormalizeName(name, email string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name, _, _ = strings.Cut(strings.TrimSpace(email), "@")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}
