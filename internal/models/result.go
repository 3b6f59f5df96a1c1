package models

import "time"

// QuizResult is the outcome of one completed quiz session
type QuizResult struct {
	Category       Category
	Level          string
	CorrectAnswers int
	TotalQuestions int
	Duration       time.Duration
	Accuracy       float64
}

// NewQuizResult builds a result, truncating the duration to whole milliseconds
func NewQuizResult(category Category, level string, correct, total int, duration time.Duration) QuizResult {
	return QuizResult{
		Category:       category,
		Level:          level,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Duration:       duration.Truncate(time.Millisecond),
		Accuracy:       Accuracy(correct, total),
	}
}

// Accuracy is correct/total, or 0 when nothing was asked
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// DurationMillis returns the elapsed time in whole milliseconds
func (r QuizResult) DurationMillis() int64 {
	return r.Duration.Milliseconds()
}

// DurationSeconds returns the elapsed time as shown on the result screen
func (r QuizResult) DurationSeconds() float64 {
	return float64(r.Duration.Milliseconds()) / 1000
}

// Location is a latitude/longitude pair attached to a saved result
type Location struct {
	Lat float64
	Lon float64
}

// SavedResult is a quiz result stored for a user
type SavedResult struct {
	ID              string
	UserID          int64
	Category        Category
	Level           string
	CorrectAnswers  int
	TotalQuestions  int
	Accuracy        float64
	DurationSeconds float64
	Location        Location
	CreatedAt       time.Time
}
