package handlers

import (
	"errors"
	"net/http"

	"sluchapp/internal/service"
)

// TheoryHandler serves the music theory screens
type TheoryHandler struct {
	theoryService *service.TheoryService
}

// NewTheoryHandler creates a new theory handler
func NewTheoryHandler(theoryService *service.TheoryService) *TheoryHandler {
	return &TheoryHandler{theoryService: theoryService}
}

// ListTopics returns the theory tiles
func (h *TheoryHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.theoryService.ListTopics()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing theory topics", err)
		return
	}

	views := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		views = append(views, TopicView{ID: t.ID, Title: t.Title, IconName: t.IconName, Emoji: t.Emoji()})
	}
	writeJSON(w, http.StatusOK, views)
}

// GetTutorial returns the tutorial behind a topic
func (h *TheoryHandler) GetTutorial(w http.ResponseWriter, r *http.Request) {
	tutorial, err := h.theoryService.GetTutorial(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			respondWithError(w, http.StatusNotFound, "Topic not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading tutorial", err)
		return
	}

	writeJSON(w, http.StatusOK, TutorialView{
		TopicID:     tutorial.TopicID,
		Title:       tutorial.Title,
		Description: tutorial.Description,
		ImageURL:    tutorial.ImageURL,
	})
}
