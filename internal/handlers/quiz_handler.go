package handlers

import (
	"errors"
	"net/http"

	"sluchapp/internal/models"
	"sluchapp/internal/questionbank"
	"sluchapp/internal/quiz"
	"sluchapp/internal/security"
	"sluchapp/internal/service"
)

// QuizHandler serves the exercise menu and running quizzes
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type startQuizRequest struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Count    int    `json:"count"`
}

type answerRequest struct {
	Question *int `json:"question"`
	Answer   *int `json:"answer"`
}

// Categories lists the exercise categories in menu order
func (h *QuizHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := models.Categories()
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{Key: c, Label: c.Label()})
	}
	writeJSON(w, http.StatusOK, views)
}

// Levels lists the level options for a category
func (h *QuizHandler) Levels(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(r.PathValue("category"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Unknown category", "", nil)
		return
	}

	levels := questionbank.Levels(category)
	views := make([]LevelView, 0, len(levels))
	for _, l := range levels {
		views = append(views, LevelView{Key: l.Key, Label: l.Label})
	}
	writeJSON(w, http.StatusOK, views)
}

// StartQuiz draws a new quiz and returns its first question
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown category", "", nil)
		return
	}

	q, err := h.quizService.Start(GetUserFromContext(r.Context()), security.GetClientIP(r), category, req.Level, req.Count)
	if err != nil {
		h.respondWithQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newQuizView(q))
}

// GetQuiz returns the current question and progress of a quiz
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.quizService.Get(r.PathValue("id"), GetUserFromContext(r.Context()))
	if err != nil {
		h.respondWithQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuizView(q))
}

// Answer records the answer to the current question
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.Question == nil || req.Answer == nil {
		respondWithError(w, http.StatusBadRequest, "Both question and answer are required", "", nil)
		return
	}

	id := r.PathValue("id")
	user := GetUserFromContext(r.Context())
	q, err := h.quizService.Get(id, user)
	if err != nil {
		h.respondWithQuizError(w, err)
		return
	}

	correct, progress, err := h.quizService.Answer(id, user, *req.Question, *req.Answer)
	if err != nil {
		h.respondWithQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnswerView{
		Correct:            correct,
		CorrectAnswerIndex: q.Session.Questions[*req.Question].CorrectAnswerIndex,
		Progress:           newProgressView(progress),
	})
}

// Finish finalizes a completed quiz and returns the result
func (h *QuizHandler) Finish(w http.ResponseWriter, r *http.Request) {
	result, err := h.quizService.Finish(r.PathValue("id"), GetUserFromContext(r.Context()))
	if err != nil {
		h.respondWithQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultView(result))
}

func (h *QuizHandler) respondWithQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		respondWithError(w, http.StatusNotFound, "Quiz not found", "", nil)
	case errors.Is(err, service.ErrTooManyQuizzes):
		w.Header().Set("Retry-After", "60")
		respondWithError(w, http.StatusTooManyRequests, "Too many quizzes in progress", "", nil)
	case errors.Is(err, service.ErrQuizCapacity):
		w.Header().Set("Retry-After", "60")
		respondWithError(w, http.StatusServiceUnavailable, "Quiz capacity reached, try again later", "", nil)
	case errors.Is(err, service.ErrInvalidQuizLength):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, quiz.ErrQuestionOutOfOrder),
		errors.Is(err, quiz.ErrSessionNotInProgress),
		errors.Is(err, quiz.ErrSessionNotComplete),
		errors.Is(err, quiz.ErrAlreadyFinalized):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Quiz error", err)
	}
}
