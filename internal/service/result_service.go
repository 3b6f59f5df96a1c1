package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"sluchapp/internal/metrics"
	"sluchapp/internal/models"
	"sluchapp/internal/repository"
	"sluchapp/internal/validation"
)

var (
	ErrNotAuthenticated = errors.New("sign in to save results")
	ErrInvalidLocation  = errors.New("invalid location")
)

// Bounding box used when a client does not report where the quiz was taken
const (
	poznanMinLat = 52.359975
	poznanMaxLat = 52.435670
	poznanMinLon = 16.826761
	poznanMaxLon = 16.992472
)

const emailTimeout = 15 * time.Second

// ResultService saves finished quiz results for signed-in users
type ResultService struct {
	results *repository.ResultRepository
	quizzes *QuizService
	email   *EmailService

	rngMu sync.Mutex
	rng   *rand.Rand

	pending sync.WaitGroup
}

// NewResultService creates a result service. rng picks fallback locations;
// nil uses a time-seeded source.
func NewResultService(results *repository.ResultRepository, quizzes *QuizService, email *EmailService, rng *rand.Rand) *ResultService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ResultService{
		results: results,
		quizzes: quizzes,
		email:   email,
		rng:     rng,
	}
}

// SaveResult stores the finished result of quizID for user. A nil location
// is replaced with a random point in Poznań.
func (s *ResultService) SaveResult(user *models.User, quizID string, loc *models.Location) (*models.SavedResult, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	var location models.Location
	if loc != nil {
		if err := validation.ValidateLocation(loc.Lat, loc.Lon); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		location = *loc
	} else {
		location = s.fallbackLocation()
	}

	result, err := s.quizzes.ClaimResult(quizID, user)
	if err != nil {
		return nil, err
	}

	saved := &models.SavedResult{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		Category:        result.Category,
		Level:           result.Level,
		CorrectAnswers:  result.CorrectAnswers,
		TotalQuestions:  result.TotalQuestions,
		Accuracy:        result.Accuracy,
		DurationSeconds: result.DurationSeconds(),
		Location:        location,
	}
	err = s.results.Create(saved)
	metrics.ResultsSaved.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		s.quizzes.ReleaseResult(quizID)
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	log.Printf("Saved quiz result %s for user %d: %s/%s %d/%d",
		saved.ID, user.ID, saved.Category, saved.Level, saved.CorrectAnswers, saved.TotalQuestions)

	s.sendSummary(user, *saved)
	return saved, nil
}

// sendSummary emails the result in the background; failures are only logged
func (s *ResultService) sendSummary(user *models.User, saved models.SavedResult) {
	if !s.email.IsEnabled() {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()
		if err := s.email.SendResultSummary(ctx, user.Email, user.Name, saved); err != nil {
			metrics.ResultEmails.WithLabelValues("failed").Inc()
			log.Printf("Failed to send result summary for %s: %v", saved.ID, err)
			return
		}
		metrics.ResultEmails.WithLabelValues("sent").Inc()
	}()
}

// Wait blocks until background result emails have been sent
func (s *ResultService) Wait() {
	s.pending.Wait()
}

// ListResults returns the user's saved results, newest first
func (s *ResultService) ListResults(user *models.User, limit int) ([]models.SavedResult, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return s.results.ListByUser(user.ID, limit)
}

func (s *ResultService) fallbackLocation() models.Location {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return RandomPoznanLocation(s.rng)
}

// RandomPoznanLocation returns a uniformly random point inside Poznań
func RandomPoznanLocation(rng *rand.Rand) models.Location {
	return models.Location{
		Lat: poznanMinLat + rng.Float64()*(poznanMaxLat-poznanMinLat),
		Lon: poznanMinLon + rng.Float64()*(poznanMaxLon-poznanMinLon),
	}
}
