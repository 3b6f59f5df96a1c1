package validation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  float64
		wantField string
	}{
		{name: "poznan", lat: 52.4064, lon: 16.9252},
		{name: "poles and antimeridian", lat: -90, lon: 180},
		{name: "latitude too high", lat: 123, lon: 0, wantField: "lat"},
		{name: "longitude too low", lat: 0, lon: -181, wantField: "lon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLocation(tt.lat, tt.lon)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateLocation() error = %v", err)
				}
				return
			}
			verr, ok := err.(ValidationError)
			if !ok || verr.Field != tt.wantField {
				t.Fatalf("ValidateLocation() error = %v, want field %s", err, tt.wantField)
			}
		})
	}
}

func TestValidateQuizLength(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{n: 1},
		{n: 5},
		{n: 50},
		{n: 0, wantErr: true},
		{n: -3, wantErr: true},
		{n: 51, wantErr: true},
	}

	for _, tt := range tests {
		if err := ValidateQuizLength(tt.n, 50); (err != nil) != tt.wantErr {
			t.Errorf("ValidateQuizLength(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		email string
		want  string
	}{
		{name: "trimmed", input: "  Jan   Kowalski ", want: "Jan Kowalski"},
		{name: "falls back to email", input: "", email: "ala@example.com", want: "ala"},
		{name: "blank name", input: "   ", email: "ola@example.com", want: "ola"},
		{name: "polish letters kept", input: "Łucja Żak", want: "Łucja Żak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input, tt.email); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	long := NormalizeName(strings.Repeat("ż", MaxNameLength+10), "")
	if n := utf8.RuneCountInString(long); n != MaxNameLength {
		t.Errorf("long name has %d characters, want %d", n, MaxNameLength)
	}
}
