package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sluchapp/internal/audio"
	"sluchapp/internal/config"
	"sluchapp/internal/database"
	"sluchapp/internal/handlers"
	"sluchapp/internal/metrics"
	"sluchapp/internal/questionbank"
	"sluchapp/internal/quiz"
	"sluchapp/internal/repository"
	"sluchapp/internal/security"
	"sluchapp/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	cleanupInterval = 1 * time.Hour
	authRateLimit   = 20
	authRateWindow  = 1 * time.Minute
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	handlers.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)
	handlers.CompleteStep(handlers.StepDatabase)

	// Run migrations
	handlers.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
	handlers.CompleteStep(handlers.StepMigrations)

	// Index the audio assets the question bank refers to
	handlers.SetCurrentStep(handlers.StepAudio)
	library := audio.NewLibrary(cfg.AudioPath, "/audio")
	if err := library.Scan(); err != nil {
		log.Printf("Warning: Failed to scan audio library: %v", err)
	}
	if missing := library.Missing(questionbank.AssetNames()); len(missing) > 0 {
		log.Printf("Warning: %d audio assets missing from %s: %v", len(missing), cfg.AudioPath, missing)
	}
	log.Printf("Audio library loaded (%d files)", library.Count())
	handlers.CompleteStep(handlers.StepAudio)

	// Initialize repositories
	handlers.SetCurrentStep(handlers.StepServices)
	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewResultRepository(db)

	// Initialize services
	var tokens *security.TokenService
	if cfg.JWTSecret != "" {
		tokens = security.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenDuration)
	} else {
		log.Println("JWT_SECRET not set, bearer tokens are disabled")
	}
	authService := service.NewAuthService(userRepo, tokens, cfg.SessionDuration)

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Printf("Warning: Email disabled: %v", err)
		emailService = nil
	}

	quizService := service.NewQuizService(questionbank.NewBuilder(library), quiz.NewSampler(nil), cfg.QuizLength)
	quizService.SetLimits(cfg.QuizMaxPerClient, cfg.QuizMaxLive)
	metrics.RegisterActiveQuizzes(quizService.Count)
	resultService := service.NewResultService(resultRepo, quizService, emailService, nil)
	calendarService := service.NewCalendarService(resultRepo, cfg.Timezone)
	mapService := service.NewMapService(resultRepo)
	theoryService := service.NewTheoryService(db)
	handlers.CompleteStep(handlers.StepServices)

	// Seed default theory topics
	handlers.SetCurrentStep(handlers.StepTheory)
	if content, err := service.LoadTheoryContent(cfg.TheoryContentPath); err != nil {
		log.Printf("Warning: Failed to load theory content: %v", err)
	} else if _, err := theoryService.SeedTopics(content); err != nil {
		log.Printf("Warning: Failed to seed theory topics: %v", err)
	}
	handlers.CompleteStep(handlers.StepTheory)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
	}
	if !cfg.GoogleOAuthEnabled() {
		log.Println("Google OAuth not configured, sign-in is unavailable")
	}

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	limiter := security.NewRateLimiter(authRateLimit, authRateWindow)
	quizLimiter := security.NewRateLimiter(cfg.QuizRateLimit, time.Minute)
	router := &handlers.Router{
		Middleware: handlers.NewMiddleware(authService, csrf, limiter, quizLimiter),
		Auth:       handlers.NewAuthHandler(authService, csrf, oauthProviders, cfg.OAuthRedirectBaseURL, cfg.AppBaseURL),
		Quiz:       handlers.NewQuizHandler(quizService),
		Results:    handlers.NewResultHandler(resultService, calendarService, mapService),
		Theory:     handlers.NewTheoryHandler(theoryService),
		Audio:      library,
		StaticPath: cfg.StaticFilesPath,
	}

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup
	go cleanupExpired(ctx, authService, quizService, cfg.QuizSessionTTL)
	go limiter.RunCleanup(ctx, cleanupInterval)
	go quizLimiter.RunCleanup(ctx, cleanupInterval)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	handlers.MarkReady()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	resultService.Wait()
	log.Println("Server stopped")
}

// cleanupExpired periodically removes expired sessions and abandoned quizzes
func cleanupExpired(ctx context.Context, authService *service.AuthService, quizService *service.QuizService, quizTTL time.Duration) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if n, err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else if n > 0 {
			log.Printf("Removed %d expired sessions", n)
		}

		if n := quizService.CleanupAbandoned(quizTTL); n > 0 {
			log.Printf("Dropped %d abandoned quizzes", n)
		}
	}
}
