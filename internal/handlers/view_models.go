package handlers

import (
	"time"

	"sluchapp/internal/models"
	"sluchapp/internal/quiz"
	"sluchapp/internal/service"
)

type CategoryView struct {
	Key   models.Category `json:"key"`
	Label string          `json:"label"`
}

type LevelView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type UserView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

type MeResponse struct {
	User      *UserView `json:"user"`
	CSRFToken string    `json:"csrfToken,omitempty"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Answers []string `json:"answers"`
	Audio   string   `json:"audio"`
}

type ProgressView struct {
	State    string `json:"state"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
}

type QuizView struct {
	ID       string        `json:"id"`
	Category string        `json:"category"`
	Level    string        `json:"level"`
	Progress ProgressView  `json:"progress"`
	Question *QuestionView `json:"question"`
	Result   *ResultView   `json:"result,omitempty"`
}

type AnswerView struct {
	Correct            bool         `json:"correct"`
	CorrectAnswerIndex int          `json:"correctAnswerIndex"`
	Progress           ProgressView `json:"progress"`
}

type ResultView struct {
	Category        string  `json:"category"`
	Level           string  `json:"level"`
	CorrectAnswers  int     `json:"correctAnswers"`
	TotalQuestions  int     `json:"totalQuestions"`
	Accuracy        float64 `json:"accuracy"`
	DurationMillis  int64   `json:"durationMs"`
	DurationSeconds float64 `json:"durationSeconds"`
}

type LocationView struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type SavedResultView struct {
	ID              string       `json:"id"`
	Category        string       `json:"category"`
	Level           string       `json:"level"`
	CorrectAnswers  int          `json:"correctAnswers"`
	TotalQuestions  int          `json:"totalQuestions"`
	Accuracy        float64      `json:"accuracy"`
	DurationSeconds float64      `json:"durationSeconds"`
	Location        LocationView `json:"location"`
	CreatedAt       time.Time    `json:"createdAt"`
}

type MapViewResponse struct {
	Center  LocationView   `json:"center"`
	Zoom    int            `json:"zoom"`
	Markers []LocationView `json:"markers"`
}

type TopicView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IconName string `json:"iconName"`
	Emoji    string `json:"emoji"`
}

type TutorialView struct {
	TopicID     string `json:"topicId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func newUserView(u *models.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email, Initials: u.Initials()}
}

func newProgressView(p quiz.Progress) ProgressView {
	return ProgressView{
		State:    p.State.String(),
		Position: p.Position,
		Total:    p.Total,
		Correct:  p.Correct,
	}
}

func newQuizView(q *service.Quiz) QuizView {
	snap := q.Session.Snapshot()
	view := QuizView{
		ID:       q.ID,
		Category: string(q.Session.Category),
		Level:    q.Session.Level,
		Progress: newProgressView(snap.Progress),
	}
	if snap.HasQuestion {
		view.Question = &QuestionView{
			Index:   snap.Progress.Position,
			Prompt:  snap.Question.Prompt,
			Answers: snap.Question.Answers,
			Audio:   string(snap.Question.Audio),
		}
	}
	if result, ok := q.Result(); ok {
		rv := newResultView(result)
		view.Result = &rv
	}
	return view
}

func newResultView(r models.QuizResult) ResultView {
	return ResultView{
		Category:        string(r.Category),
		Level:           r.Level,
		CorrectAnswers:  r.CorrectAnswers,
		TotalQuestions:  r.TotalQuestions,
		Accuracy:        r.Accuracy,
		DurationMillis:  r.DurationMillis(),
		DurationSeconds: r.DurationSeconds(),
	}
}

func newLocationView(l models.Location) LocationView {
	return LocationView{Lat: l.Lat, Lon: l.Lon}
}

func newSavedResultView(r models.SavedResult) SavedResultView {
	return SavedResultView{
		ID:              r.ID,
		Category:        string(r.Category),
		Level:           r.Level,
		CorrectAnswers:  r.CorrectAnswers,
		TotalQuestions:  r.TotalQuestions,
		Accuracy:        r.Accuracy,
		DurationSeconds: r.DurationSeconds,
		Location:        newLocationView(r.Location),
		CreatedAt:       r.CreatedAt,
	}
}
