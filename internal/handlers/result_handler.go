package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"sluchapp/internal/calendar"
	"sluchapp/internal/models"
	"sluchapp/internal/service"
)

const (
	defaultResultsLimit = 50
	maxResultsLimit     = 500
)

// ResultHandler serves saved results and the calendar and map screens
type ResultHandler struct {
	resultService   *service.ResultService
	calendarService *service.CalendarService
	mapService      *service.MapService
	now             func() time.Time
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService *service.ResultService, calendarService *service.CalendarService, mapService *service.MapService) *ResultHandler {
	return &ResultHandler{
		resultService:   resultService,
		calendarService: calendarService,
		mapService:      mapService,
		now:             time.Now,
	}
}

type saveResultRequest struct {
	QuizID string   `json:"quizId"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
}

// SaveResult stores a finished quiz for the signed-in user
func (h *ResultHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	var req saveResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.QuizID == "" {
		respondWithError(w, http.StatusBadRequest, "quizId is required", "", nil)
		return
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		respondWithError(w, http.StatusBadRequest, "lat and lon must be sent together", "", nil)
		return
	}

	var loc *models.Location
	if req.Lat != nil {
		loc = &models.Location{Lat: *req.Lat, Lon: *req.Lon}
	}

	saved, err := h.resultService.SaveResult(GetUserFromContext(r.Context()), req.QuizID, loc)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			respondWithError(w, http.StatusUnauthorized, err.Error(), "", nil)
		case errors.Is(err, service.ErrInvalidLocation):
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		case errors.Is(err, service.ErrQuizNotFound):
			respondWithError(w, http.StatusNotFound, "Quiz not found", "", nil)
		case errors.Is(err, service.ErrQuizNotFinished), errors.Is(err, service.ErrResultAlreadySaved):
			respondWithError(w, http.StatusConflict, err.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to save result", "Error saving result", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, newSavedResultView(*saved))
}

// ListResults returns the user's saved results, newest first
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxResultsLimit {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", "", nil)
			return
		}
		limit = n
	}

	results, err := h.resultService.ListResults(GetUserFromContext(r.Context()), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing results", err)
		return
	}

	views := make([]SavedResultView, 0, len(results))
	for _, res := range results {
		views = append(views, newSavedResultView(res))
	}
	writeJSON(w, http.StatusOK, views)
}

// Calendar returns the practice calendar for ?month=YYYY-MM, defaulting to the current month
func (h *ResultHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	ym := h.calendarService.CurrentMonth(h.now())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := calendar.ParseYearMonth(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "month must be YYYY-MM", "", nil)
			return
		}
		ym = parsed
	}

	grid, err := h.calendarService.Month(GetUserFromContext(r.Context()), ym)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error building calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// Map returns the user's result locations and the default camera
func (h *ResultHandler) Map(w http.ResponseWriter, r *http.Request) {
	view, err := h.mapService.Markers(GetUserFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading map", err)
		return
	}

	markers := make([]LocationView, 0, len(view.Markers))
	for _, m := range view.Markers {
		markers = append(markers, newLocationView(m))
	}
	writeJSON(w, http.StatusOK, MapViewResponse{
		Center:  newLocationView(view.Center),
		Zoom:    view.Zoom,
		Markers: markers,
	})
}
