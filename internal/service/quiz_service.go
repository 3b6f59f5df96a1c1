package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"sluchapp/internal/metrics"
	"sluchapp/internal/models"
	"sluchapp/internal/questionbank"
	"sluchapp/internal/quiz"
	"sluchapp/internal/validation"
)

// MaxQuizLength caps the number of questions a client may request
const MaxQuizLength = 50

// Default bounds on the in-memory quiz store
const (
	DefaultMaxQuizzesPerClient = 20
	DefaultMaxLiveQuizzes      = 10000
)

var (
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrInvalidQuizLength  = errors.New("invalid number of questions")
	ErrQuizNotFinished    = errors.New("quiz has not been finished")
	ErrResultAlreadySaved = errors.New("quiz result already saved")
	ErrTooManyQuizzes     = errors.New("too many quizzes in progress")
	ErrQuizCapacity       = errors.New("quiz capacity reached")
)

// Quiz is an in-memory quiz session and its bookkeeping
type Quiz struct {
	ID        string
	OwnerID   int64 // 0 for anonymous quizzes
	CreatedAt time.Time
	client    string
	Session   *quiz.Session

	mu     sync.Mutex
	result *models.QuizResult
	saved  bool
}

// Result returns the finalized result, if any
func (q *Quiz) Result() (models.QuizResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.result == nil {
		return models.QuizResult{}, false
	}
	return *q.result, true
}

// QuizService keeps running quiz sessions in memory
type QuizService struct {
	builder       *questionbank.Builder
	sampler       *quiz.Sampler
	defaultLength int
	now           func() time.Time

	maxPerClient int
	maxLive      int

	mu      sync.RWMutex
	quizzes map[string]*Quiz
	live    map[string]int // client key -> quizzes held
}

// NewQuizService creates a quiz service drawing defaultLength questions per quiz
func NewQuizService(builder *questionbank.Builder, sampler *quiz.Sampler, defaultLength int) *QuizService {
	if defaultLength <= 0 {
		defaultLength = 5
	}
	return &QuizService{
		builder:       builder,
		sampler:       sampler,
		defaultLength: defaultLength,
		now:           time.Now,
		maxPerClient:  DefaultMaxQuizzesPerClient,
		maxLive:       DefaultMaxLiveQuizzes,
		quizzes:       make(map[string]*Quiz),
		live:          make(map[string]int),
	}
}

// SetLimits bounds the quizzes held per client and in total. Zero disables a bound.
func (s *QuizService) SetLimits(perClient, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPerClient = perClient
	s.maxLive = total
}

// clientKey identifies who a quiz counts against: the signed-in user, or
// the client address for anonymous quizzes
func clientKey(owner *models.User, addr string) string {
	if owner != nil {
		return "user:" + strconv.FormatInt(owner.ID, 10)
	}
	return "addr:" + addr
}

// Start draws a new quiz for the category and level and starts its clock.
// A count of zero uses the default length. addr identifies anonymous clients
// for the per-client bound.
func (s *QuizService) Start(owner *models.User, addr string, category models.Category, level string, count int) (*Quiz, error) {
	if count == 0 {
		count = s.defaultLength
	}
	if err := validation.ValidateQuizLength(count, MaxQuizLength); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizLength, err)
	}

	pool := s.builder.BuildPool(category, level)
	questions := s.sampler.Draw(pool, count)

	q := &Quiz{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
		Session:   quiz.NewSession(category, level, questions, s.now),
		client:    clientKey(owner, addr),
	}
	if owner != nil {
		q.OwnerID = owner.ID
	}
	if err := q.Session.Start(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.maxLive > 0 && len(s.quizzes) >= s.maxLive {
		s.mu.Unlock()
		return nil, ErrQuizCapacity
	}
	if s.maxPerClient > 0 && s.live[q.client] >= s.maxPerClient {
		s.mu.Unlock()
		return nil, ErrTooManyQuizzes
	}
	s.quizzes[q.ID] = q
	s.live[q.client]++
	s.mu.Unlock()

	metrics.QuizzesStarted.WithLabelValues(string(category)).Inc()
	return q, nil
}

// Get returns a quiz visible to owner. Quizzes started by a signed-in user
// are hidden from everyone else.
func (s *QuizService) Get(id string, owner *models.User) (*Quiz, error) {
	s.mu.RLock()
	q, ok := s.quizzes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrQuizNotFound
	}
	if q.OwnerID != 0 && (owner == nil || owner.ID != q.OwnerID) {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

// Answer records the chosen answer for the question at questionIndex
func (s *QuizService) Answer(id string, owner *models.User, questionIndex, chosen int) (bool, quiz.Progress, error) {
	q, err := s.Get(id, owner)
	if err != nil {
		return false, quiz.Progress{}, err
	}
	correct, err := q.Session.RecordAnswer(questionIndex, chosen)
	if err != nil {
		return false, q.Session.Progress(), err
	}
	metrics.AnswersRecorded.WithLabelValues(strconv.FormatBool(correct)).Inc()
	return correct, q.Session.Progress(), nil
}

// Finish finalizes a completed quiz. Repeated calls return the same result.
func (s *QuizService) Finish(id string, owner *models.User) (models.QuizResult, error) {
	q, err := s.Get(id, owner)
	if err != nil {
		return models.QuizResult{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.result != nil {
		return *q.result, nil
	}

	result, err := q.Session.Finalize()
	if err != nil {
		return models.QuizResult{}, err
	}
	q.result = &result

	metrics.QuizzesCompleted.WithLabelValues(string(result.Category)).Inc()
	metrics.QuizAccuracy.Observe(result.Accuracy)
	return result, nil
}

// ClaimResult hands out the finished result of a quiz for saving. Each quiz
// result can be claimed once; ReleaseResult undoes a claim after a failed save.
func (s *QuizService) ClaimResult(id string, owner *models.User) (models.QuizResult, error) {
	q, err := s.Get(id, owner)
	if err != nil {
		return models.QuizResult{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.result == nil {
		return models.QuizResult{}, ErrQuizNotFinished
	}
	if q.saved {
		return models.QuizResult{}, ErrResultAlreadySaved
	}
	q.saved = true
	return *q.result, nil
}

// ReleaseResult allows a claimed result to be claimed again
func (s *QuizService) ReleaseResult(id string) {
	s.mu.RLock()
	q, ok := s.quizzes[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	q.mu.Lock()
	q.saved = false
	q.mu.Unlock()
}

// CleanupAbandoned drops quizzes created more than ttl ago
func (s *QuizService) CleanupAbandoned(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, q := range s.quizzes {
		if q.CreatedAt.Before(cutoff) {
			s.removeLocked(id, q)
			removed++
		}
	}
	return removed
}

func (s *QuizService) removeLocked(id string, q *Quiz) {
	delete(s.quizzes, id)
	if s.live[q.client] <= 1 {
		delete(s.live, q.client)
	} else {
		s.live[q.client]--
	}
}

// Count returns the number of quizzes held in memory
func (s *QuizService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}
