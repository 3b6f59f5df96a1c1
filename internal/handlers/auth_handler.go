package handlers

import (
	"errors"
	"net/http"

	"sluchapp/internal/security"
	"sluchapp/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	csrf                 *security.CSRFGenerator
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
	postLoginRedirect    string
}

// NewAuthHandler creates a new auth handler. Users land on postLoginRedirect after signing in.
func NewAuthHandler(authService *service.AuthService, csrf *security.CSRFGenerator, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL, postLoginRedirect string) *AuthHandler {
	if postLoginRedirect == "" {
		postLoginRedirect = "/"
	}
	return &AuthHandler{
		authService:          authService,
		csrf:                 csrf,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		postLoginRedirect:    postLoginRedirect,
	}
}

// Me returns the signed-in identity, or a null user for anonymous callers
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	resp := MeResponse{User: newUserView(user)}

	if sessionID := GetSessionIDFromContext(r.Context()); sessionID != "" {
		token, err := h.csrf.GenerateToken(sessionID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error generating CSRF token", err)
			return
		}
		resp.CSRFToken = token
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout deletes the current session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := GetSessionIDFromContext(r.Context()); sessionID != "" {
		if err := h.authService.Logout(sessionID); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error logging out", err)
			return
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, security.SessionCookieName))
	w.WriteHeader(http.StatusNoContent)
}

// IssueToken signs a bearer token for the mobile client
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		if errors.Is(err, service.ErrTokensDisabled) {
			respondWithError(w, http.StatusServiceUnavailable, "Bearer tokens are not enabled", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing token", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
