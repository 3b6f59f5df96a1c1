package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "QUIZ_LENGTH", "SESSION_DURATION", "SES_FROM_EMAIL", "GOOGLE_CLIENT_ID", "DEBUG", "STATIC_PATH", "AUDIO_PATH", "QUIZ_RATE_LIMIT", "QUIZ_MAX_PER_CLIENT", "QUIZ_MAX_LIVE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.QuizLength != 5 {
		t.Errorf("QuizLength = %d, want 5", cfg.QuizLength)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("SessionDuration = %v, want 24h", cfg.SessionDuration)
	}
	if cfg.AudioPath != "./audio" {
		t.Errorf("AudioPath = %q, want ./audio", cfg.AudioPath)
	}
	if cfg.QuizRateLimit != 30 || cfg.QuizMaxPerClient != 20 || cfg.QuizMaxLive != 10000 {
		t.Errorf("quiz limits = %d/%d/%d, want 30/20/10000", cfg.QuizRateLimit, cfg.QuizMaxPerClient, cfg.QuizMaxLive)
	}
	if cfg.EmailEnabled() {
		t.Error("EmailEnabled() = true without SES_FROM_EMAIL")
	}
	if cfg.GoogleOAuthEnabled() {
		t.Error("GoogleOAuthEnabled() = true without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("QUIZ_LENGTH", "10")
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("DEBUG", "true")
	t.Setenv("SES_FROM_EMAIL", "quiz@example.com")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.QuizLength != 10 {
		t.Errorf("QuizLength = %d, want 10", cfg.QuizLength)
	}
	if cfg.SessionDuration != 2*time.Hour {
		t.Errorf("SessionDuration = %v", cfg.SessionDuration)
	}
	if !cfg.Debug {
		t.Error("Debug = false")
	}
	if !cfg.EmailEnabled() {
		t.Error("EmailEnabled() = false")
	}
	if cfg.Timezone != time.UTC {
		t.Errorf("Timezone = %v, want UTC", cfg.Timezone)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("QUIZ_LENGTH", "many")
	t.Setenv("SESSION_DURATION", "forever")
	t.Setenv("DEBUG", "maybe")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()

	if cfg.QuizLength != 5 {
		t.Errorf("QuizLength = %d, want 5", cfg.QuizLength)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("SessionDuration = %v, want 24h", cfg.SessionDuration)
	}
	if cfg.Debug {
		t.Error("Debug = true")
	}
	if cfg.Timezone != time.UTC {
		t.Errorf("Timezone = %v, want UTC", cfg.Timezone)
	}
}
