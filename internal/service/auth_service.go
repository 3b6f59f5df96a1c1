package service

import (
	"errors"
	"fmt"
	"time"

	"sluchapp/internal/models"
	"sluchapp/internal/repository"
	"sluchapp/internal/security"
	"sluchapp/internal/validation"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrMissingOAuthIdentity = errors.New("missing oauth provider information")
	ErrTokensDisabled       = errors.New("bearer tokens are not configured")
)

// AuthService handles sign-in, server sessions and bearer tokens
type AuthService struct {
	userRepo        *repository.UserRepository
	tokens          *security.TokenService
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. tokens may be nil, which
// disables bearer token issuing.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenService, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokens:          tokens,
		sessionDuration: sessionDuration,
	}
}

// OAuthLogin finds or creates the user for an OAuth identity and opens a session
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, ErrMissingOAuthIdentity
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, fmt.Errorf("invalid oauth profile: %w", err)
	}
	name = validation.NormalizeName(name, email)

	user, err := s.userRepo.UpsertOAuthUser(provider, subject, email, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upsert oauth user: %w", err)
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, user, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	n, err := s.userRepo.DeleteExpiredSessions(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}

// IssueToken signs a bearer token for the user
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	if s.tokens == nil {
		return "", time.Time{}, ErrTokensDisabled
	}
	return s.tokens.GenerateToken(user.ID)
}

// ValidateToken returns the user a bearer token was issued to
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	if s.tokens == nil {
		return nil, ErrTokensDisabled
	}
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}
