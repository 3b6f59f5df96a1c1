package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router groups the handlers served by the API
type Router struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Quiz       *QuizHandler
	Results    *ResultHandler
	Theory     *TheoryHandler
	// Audio serves quiz audio under /audio/{key} when set
	Audio http.Handler
	// StaticPath is served under /static/ when set
	StaticPath string
}

// Handler registers every route and wraps the mux with request logging
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	m := rt.Middleware

	if rt.StaticPath != "" {
		fs := http.FileServer(http.Dir(rt.StaticPath))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	if rt.Audio != nil {
		mux.Handle("GET /audio/{key}", rt.Audio)
	}

	// Health
	mux.HandleFunc("GET /healthz", ShowStartupStatus)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("GET /auth/{provider}/start", m.RateLimit(rt.Auth.StartOAuth))
	mux.HandleFunc("GET /auth/{provider}/callback", m.RateLimit(rt.Auth.OAuthCallback))
	mux.HandleFunc("POST /auth/logout", m.RequireAuth(m.CSRFProtect(rt.Auth.Logout)))
	mux.HandleFunc("POST /api/token", m.RateLimit(m.RequireAuth(m.CSRFProtect(rt.Auth.IssueToken))))
	mux.HandleFunc("GET /api/me", m.OptionalAuth(rt.Auth.Me))

	// Quiz
	mux.HandleFunc("GET /api/categories", rt.Quiz.Categories)
	mux.HandleFunc("GET /api/categories/{category}/levels", rt.Quiz.Levels)
	mux.HandleFunc("POST /api/quizzes", m.QuizRateLimit(m.OptionalAuth(m.CSRFProtect(rt.Quiz.StartQuiz))))
	mux.HandleFunc("GET /api/quizzes/{id}", m.OptionalAuth(rt.Quiz.GetQuiz))
	mux.HandleFunc("POST /api/quizzes/{id}/answers", m.OptionalAuth(m.CSRFProtect(rt.Quiz.Answer)))
	mux.HandleFunc("POST /api/quizzes/{id}/result", m.OptionalAuth(m.CSRFProtect(rt.Quiz.Finish)))

	// Results
	mux.HandleFunc("POST /api/results", m.RequireAuth(m.CSRFProtect(rt.Results.SaveResult)))
	mux.HandleFunc("GET /api/results", m.RequireAuth(rt.Results.ListResults))
	mux.HandleFunc("GET /api/calendar", m.RequireAuth(rt.Results.Calendar))
	mux.HandleFunc("GET /api/map", m.RequireAuth(rt.Results.Map))

	// Theory
	mux.HandleFunc("GET /api/theory", rt.Theory.ListTopics)
	mux.HandleFunc("GET /api/theory/{id}", rt.Theory.GetTutorial)

	return Logging(mux)
}
