package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sluchapp/internal/metrics"
	"sluchapp/internal/models"
	"sluchapp/internal/security"
	"sluchapp/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey    ContextKey = "user"
	SessionContextKey ContextKey = "session_id"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
	quizLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance. limiter guards the auth
// routes and quizLimiter guards quiz creation; either may be nil to disable it.
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, limiter, quizLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		limiter:     limiter,
		quizLimiter: quizLimiter,
	}
}

// authenticate resolves the caller from a bearer token or the session cookie.
// sessionID is empty for bearer requests.
func (m *Middleware) authenticate(r *http.Request) (user *models.User, sessionID string, err error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return nil, "", security.ErrInvalidToken
		}
		user, err := m.authService.ValidateToken(token)
		return user, "", err
	}

	cookie, err := r.Cookie(security.SessionCookieName)
	if err != nil {
		return nil, "", nil
	}
	user, err = m.authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil, "", err
	}
	return user, cookie.Value, nil
}

func withUser(r *http.Request, user *models.User, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), UserContextKey, user)
	if sessionID != "" {
		ctx = context.WithValue(ctx, SessionContextKey, sessionID)
	}
	return r.WithContext(ctx)
}

// RequireAuth is middleware that requires a valid session or bearer token
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, sessionID, err := m.authenticate(r)
		if err != nil && !isCredentialError(err) {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error authenticating request", err)
			return
		}
		if user == nil {
			if _, cookieErr := r.Cookie(security.SessionCookieName); cookieErr == nil {
				http.SetCookie(w, security.CreateDeleteCookie(r, security.SessionCookieName))
			}
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		next(w, withUser(r, user, sessionID))
	}
}

// isCredentialError reports whether err means the caller presented bad credentials
// rather than the lookup failing
func isCredentialError(err error) bool {
	return errors.Is(err, security.ErrInvalidToken) ||
		errors.Is(err, service.ErrTokensDisabled) ||
		errors.Is(err, service.ErrSessionNotFound) ||
		errors.Is(err, service.ErrSessionExpired)
}

// OptionalAuth adds the user to the context when the request is authenticated
// and otherwise lets it through anonymously
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, sessionID, err := m.authenticate(r)
		if err != nil || user == nil {
			next(w, r)
			return
		}
		next(w, withUser(r, user, sessionID))
	}
}

// CSRFProtect requires a valid X-CSRF-Token header on unsafe requests
// authenticated by the session cookie. It must run inside RequireAuth or OptionalAuth.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}

		sessionID := GetSessionIDFromContext(r.Context())
		if sessionID == "" {
			next(w, r)
			return
		}

		if !m.csrf.ValidateToken(sessionID, r.Header.Get(security.CSRFHeader)) {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the auth request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return rateLimit(m.limiter, next)
}

// QuizRateLimit rejects clients that start quizzes too quickly
func (m *Middleware) QuizRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return rateLimit(m.quizLimiter, next)
}

func rateLimit(limiter *security.RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil && !limiter.Allow(security.GetClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging middleware logs HTTP requests and records request metrics
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		// Call next handler
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		// Log request
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed)
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionIDFromContext returns the cookie session id, empty for bearer or anonymous requests
func GetSessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionContextKey).(string)
	return id
}
