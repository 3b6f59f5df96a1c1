package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	DatabaseType      string
	DatabasePath      string
	DatabaseURL       string
	SessionDuration   time.Duration
	StaticFilesPath   string
	AudioPath         string
	MigrationsPath    string
	TheoryContentPath string
	QuizLength        int
	QuizSessionTTL    time.Duration
	QuizRateLimit     int // quiz starts per minute per client
	QuizMaxPerClient  int
	QuizMaxLive       int
	Timezone          *time.Location
	Debug             bool

	// OAuth
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Tokens
	JWTSecret     string
	JWTIssuer     string
	TokenDuration time.Duration
	CSRFSecret    string

	// Email (SES). Email is disabled when SESFromEmail is empty.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	staticPath := getEnv("STATIC_PATH", "./static")

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabasePath:      getEnv("DB_PATH", "./sluchapp.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SessionDuration:   getEnvDuration("SESSION_DURATION", 24*time.Hour),
		StaticFilesPath:   staticPath,
		AudioPath:         getEnv("AUDIO_PATH", "./audio"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		TheoryContentPath: getEnv("THEORY_CONTENT_PATH", ""),
		QuizLength:        getEnvInt("QUIZ_LENGTH", 5),
		QuizSessionTTL:    getEnvDuration("QUIZ_SESSION_TTL", 2*time.Hour),
		QuizRateLimit:     getEnvInt("QUIZ_RATE_LIMIT", 30),
		QuizMaxPerClient:  getEnvInt("QUIZ_MAX_PER_CLIENT", 20),
		QuizMaxLive:       getEnvInt("QUIZ_MAX_LIVE", 10000),
		Timezone:          getEnvLocation("TIMEZONE", "Europe/Warsaw"),
		Debug:             getEnvBool("DEBUG", false),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "sluchapp"),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 30*24*time.Hour),
		CSRFSecret:    getEnv("CSRF_SECRET", ""),

		AWSRegion:    getEnv("AWS_REGION", "eu-central-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SłuchApp"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// GoogleOAuthEnabled reports whether Google login is configured
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// EmailEnabled reports whether result emails can be sent
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvLocation(key, defaultValue string) *time.Location {
	name := getEnv(key, defaultValue)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown %s=%q, using UTC", key, name)
		return time.UTC
	}
	return loc
}
