package quiz

import (
	"errors"
	"sync"
	"time"

	"sluchapp/internal/models"
)

// State is the lifecycle stage of a session
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyStarted       = errors.New("quiz session already started")
	ErrSessionNotInProgress = errors.New("quiz session is not in progress")
	ErrQuestionOutOfOrder   = errors.New("answer is not for the current question")
	ErrSessionNotComplete   = errors.New("quiz session is not complete")
	ErrAlreadyFinalized     = errors.New("quiz session already finalized")
)

// Session is one run through a fixed list of questions.
// It is safe for concurrent use.
type Session struct {
	Category  models.Category
	Level     string
	Questions []models.Question

	now func() time.Time

	mu        sync.Mutex
	state     State
	position  int
	correct   int
	startedAt time.Time
	endedAt   time.Time
	finalized bool
}

// NewSession creates a session over questions. A nil clock uses time.Now.
func NewSession(category models.Category, level string, questions []models.Question, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		Category:  category,
		Level:     level,
		Questions: questions,
		now:       now,
	}
}

// Start begins timing. A session without questions completes immediately.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.startedAt = s.now()
	if len(s.Questions) == 0 {
		s.state = StateComplete
		s.endedAt = s.startedAt
		return nil
	}
	s.state = StateInProgress
	return nil
}

// RecordAnswer scores the chosen answer for the current question and advances.
// It reports whether the answer was correct.
func (s *Session) RecordAnswer(questionIndex, chosen int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false, ErrSessionNotInProgress
	}
	if questionIndex != s.position {
		return false, ErrQuestionOutOfOrder
	}

	correct := chosen == s.Questions[s.position].CorrectAnswerIndex
	if correct {
		s.correct++
	}
	s.position++
	if s.position == len(s.Questions) {
		s.state = StateComplete
		s.endedAt = s.now()
	}
	return correct, nil
}

// Finalize returns the result of a completed session. It succeeds only once.
func (s *Session) Finalize() (models.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateComplete {
		return models.QuizResult{}, ErrSessionNotComplete
	}
	if s.finalized {
		return models.QuizResult{}, ErrAlreadyFinalized
	}
	s.finalized = true

	return models.NewQuizResult(s.Category, s.Level, s.correct, len(s.Questions), s.endedAt.Sub(s.startedAt)), nil
}

// Progress is a snapshot of a session's position
type Progress struct {
	State     State
	Position  int
	Total     int
	Correct   int
	Finalized bool
}

// Progress returns the current position and score
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() Progress {
	return Progress{
		State:     s.state,
		Position:  s.position,
		Total:     len(s.Questions),
		Correct:   s.correct,
		Finalized: s.finalized,
	}
}

// CurrentQuestion returns the question awaiting an answer
func (s *Session) CurrentQuestion() (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (models.Question, bool) {
	if s.state != StateInProgress {
		return models.Question{}, false
	}
	return s.Questions[s.position], true
}

// Snapshot is the progress and current question taken together
type Snapshot struct {
	Progress    Progress
	Question    models.Question
	HasQuestion bool
}

// Snapshot returns the progress and the question awaiting an answer under
// one lock, so Question always belongs to Progress.Position
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.currentLocked()
	return Snapshot{Progress: s.progressLocked(), Question: question, HasQuestion: ok}
}
