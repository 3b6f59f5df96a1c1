package quiz

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"sluchapp/internal/models"
)

// fakeClock returns the queued times in order, repeating the last one
type fakeClock struct {
	times []time.Time
	i     int
}

func (c *fakeClock) Now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

func TestSessionScoring(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{base, base.Add(4200*time.Millisecond + 300*time.Microsecond)}}

	questions := []models.Question{
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 1},
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 1},
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 0},
	}
	s := NewSession(models.CategoryIntervals, "basic", questions, clock.Now)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	answers := []struct {
		chosen int
		want   bool
	}{
		{0, true}, {0, false}, {0, true}, {1, true}, {1, false},
	}
	for i, a := range answers {
		got, err := s.RecordAnswer(i, a.chosen)
		if err != nil {
			t.Fatalf("RecordAnswer(%d) error = %v", i, err)
		}
		if got != a.want {
			t.Errorf("RecordAnswer(%d) = %v, want %v", i, got, a.want)
		}
	}

	if p := s.Progress(); p.State != StateComplete {
		t.Fatalf("state = %v, want complete", p.State)
	}

	result, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if result.CorrectAnswers != 3 || result.TotalQuestions != 5 {
		t.Errorf("result = %d/%d, want 3/5", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.Accuracy != 0.6 {
		t.Errorf("accuracy = %v, want 0.6", result.Accuracy)
	}
	if result.DurationMillis() != 4200 {
		t.Errorf("duration = %dms, want 4200ms", result.DurationMillis())
	}
	if result.DurationSeconds() != 4.2 {
		t.Errorf("duration seconds = %v, want 4.2", result.DurationSeconds())
	}
	if result.Category != models.CategoryIntervals || result.Level != "basic" {
		t.Errorf("result category/level = %s/%s", result.Category, result.Level)
	}

	if _, err := s.Finalize(); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession(models.CategoryScales, "basic", []models.Question{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p := s.Progress(); p.State != StateComplete {
		t.Fatalf("state = %v, want complete", p.State)
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("CurrentQuestion() reported a question for an empty session")
	}

	result, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if result.TotalQuestions != 0 || result.Accuracy != 0 || result.Duration != 0 {
		t.Errorf("empty result = %+v", result)
	}
}

func TestSessionErrors(t *testing.T) {
	questions := []models.Question{
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Answers: []string{"a", "b"}, CorrectAnswerIndex: 1},
	}

	t.Run("answer before start", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		if _, err := s.RecordAnswer(0, 0); !errors.Is(err, ErrSessionNotInProgress) {
			t.Errorf("error = %v, want ErrSessionNotInProgress", err)
		}
	})

	t.Run("start twice", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
			t.Errorf("error = %v, want ErrAlreadyStarted", err)
		}
	})

	t.Run("out of order", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		if _, err := s.RecordAnswer(1, 1); !errors.Is(err, ErrQuestionOutOfOrder) {
			t.Errorf("error = %v, want ErrQuestionOutOfOrder", err)
		}
		if p := s.Progress(); p.Position != 0 {
			t.Errorf("position = %d after rejected answer, want 0", p.Position)
		}
	})

	t.Run("repeat answer", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		if _, err := s.RecordAnswer(0, 0); err != nil {
			t.Fatal(err)
		}
		if _, err := s.RecordAnswer(0, 0); !errors.Is(err, ErrQuestionOutOfOrder) {
			t.Errorf("error = %v, want ErrQuestionOutOfOrder", err)
		}
	})

	t.Run("finalize early", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		if _, err := s.Finalize(); !errors.Is(err, ErrSessionNotComplete) {
			t.Errorf("error = %v, want ErrSessionNotComplete", err)
		}
	})

	t.Run("answer after complete", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		_, _ = s.RecordAnswer(0, 0)
		_, _ = s.RecordAnswer(1, 1)
		if _, err := s.RecordAnswer(2, 0); !errors.Is(err, ErrSessionNotInProgress) {
			t.Errorf("error = %v, want ErrSessionNotInProgress", err)
		}
	})

	t.Run("out of range choice counts as wrong", func(t *testing.T) {
		s := NewSession(models.CategoryChords, "basic", questions, nil)
		_ = s.Start()
		correct, err := s.RecordAnswer(0, 99)
		if err != nil || correct {
			t.Errorf("RecordAnswer(0, 99) = %v, %v, want false, nil", correct, err)
		}
	})
}

func TestSessionCurrentQuestion(t *testing.T) {
	questions := []models.Question{
		{Prompt: "first", CorrectAnswerIndex: 0},
		{Prompt: "second", CorrectAnswerIndex: 0},
	}
	s := NewSession(models.CategoryIntervals, "basic", questions, nil)

	if _, ok := s.CurrentQuestion(); ok {
		t.Error("CurrentQuestion() before start should report none")
	}
	_ = s.Start()
	q, ok := s.CurrentQuestion()
	if !ok || q.Prompt != "first" {
		t.Errorf("CurrentQuestion() = %q, %v", q.Prompt, ok)
	}
	_, _ = s.RecordAnswer(0, 0)
	q, _ = s.CurrentQuestion()
	if q.Prompt != "second" {
		t.Errorf("CurrentQuestion() = %q, want second", q.Prompt)
	}
}

func TestSessionSnapshotMatchesPosition(t *testing.T) {
	questions := make([]models.Question, 200)
	for i := range questions {
		questions[i] = models.Question{Prompt: strconv.Itoa(i)}
	}
	s := NewSession(models.CategoryIntervals, "advanced", questions, nil)
	_ = s.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range questions {
			if _, err := s.RecordAnswer(i, 0); err != nil {
				t.Errorf("RecordAnswer(%d) error = %v", i, err)
				return
			}
		}
	}()

	for {
		snap := s.Snapshot()
		if !snap.HasQuestion {
			if snap.Progress.State != StateComplete {
				t.Fatalf("no question while %s", snap.Progress.State)
			}
			break
		}
		if snap.Question.Prompt != strconv.Itoa(snap.Progress.Position) {
			t.Fatalf("question %q shown at position %d", snap.Question.Prompt, snap.Progress.Position)
		}
	}
	wg.Wait()
}
