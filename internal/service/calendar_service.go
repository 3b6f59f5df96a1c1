package service

import (
	"time"

	"sluchapp/internal/calendar"
	"sluchapp/internal/models"
	"sluchapp/internal/repository"
)

// Default camera for the results map
const (
	MapCenterLat = 52.4064
	MapCenterLon = 16.9252
	MapZoom      = 12
)

// CalendarService builds the practice calendar from saved results
type CalendarService struct {
	results  *repository.ResultRepository
	location *time.Location
}

// NewCalendarService creates a calendar service that buckets days in loc
func NewCalendarService(results *repository.ResultRepository, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{results: results, location: loc}
}

// ActivityDates returns the local dates on which the user saved a result
func (s *CalendarService) ActivityDates(user *models.User) (map[calendar.Date]bool, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	timestamps, err := s.results.ListTimestampsByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return calendar.ActivityDates(timestamps, s.location), nil
}

// Month returns the month grid with the user's active days marked
func (s *CalendarService) Month(user *models.User, ym calendar.YearMonth) (calendar.Grid, error) {
	activity, err := s.ActivityDates(user)
	if err != nil {
		return calendar.Grid{}, err
	}
	return calendar.MonthGrid(ym, activity), nil
}

// CurrentMonth returns the month containing now in the service's timezone
func (s *CalendarService) CurrentMonth(now time.Time) calendar.YearMonth {
	return calendar.Of(now.In(s.location))
}

// MapView is the data behind the results map
type MapView struct {
	Center  models.Location
	Zoom    int
	Markers []models.Location
}

// MapService lists where a user's quizzes were taken
type MapService struct {
	results *repository.ResultRepository
}

// NewMapService creates a map service
func NewMapService(results *repository.ResultRepository) *MapService {
	return &MapService{results: results}
}

// Markers returns every saved result location of the user with the default camera
func (s *MapService) Markers(user *models.User) (*MapView, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	locations, err := s.results.ListLocationsByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return &MapView{
		Center:  models.Location{Lat: MapCenterLat, Lon: MapCenterLon},
		Zoom:    MapZoom,
		Markers: locations,
	}, nil
}
