package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sluchapp/internal/database"
	"sluchapp/internal/models"
)

const resultColumns = `id, user_id, category, level, correct_answers, total_questions,
	accuracy, duration_seconds, latitude, longitude, created_at`

// ResultRepository handles database operations for saved quiz results
type ResultRepository struct {
	db database.DBTX
}

// NewResultRepository creates a new result repository
func NewResultRepository(db database.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

func scanResult(row rowScanner) (*models.SavedResult, error) {
	var r models.SavedResult
	var category string
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&category,
		&r.Level,
		&r.CorrectAnswers,
		&r.TotalQuestions,
		&r.Accuracy,
		&r.DurationSeconds,
		&r.Location.Lat,
		&r.Location.Lon,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Category = models.Category(category)
	return &r, nil
}

// Create stores a saved result. CreatedAt is set when zero.
func (r *ResultRepository) Create(result *models.SavedResult) error {
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	query := "INSERT INTO quiz_results (" + resultColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.Exec(query,
		result.ID,
		result.UserID,
		string(result.Category),
		result.Level,
		result.CorrectAnswers,
		result.TotalQuestions,
		result.Accuracy,
		result.DurationSeconds,
		result.Location.Lat,
		result.Location.Lon,
		result.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// GetByID retrieves a saved result by ID
func (r *ResultRepository) GetByID(id string) (*models.SavedResult, error) {
	query := "SELECT " + resultColumns + " FROM quiz_results WHERE id = ?"
	result, err := scanResult(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz result: %w", err)
	}
	return result, nil
}

// ListByUser returns a user's results, newest first
func (r *ResultRepository) ListByUser(userID int64, limit int) ([]models.SavedResult, error) {
	query := "SELECT " + resultColumns + " FROM quiz_results WHERE user_id = ? ORDER BY created_at DESC"
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.list(query, args...)
}

// ListAll returns every stored result, oldest first
func (r *ResultRepository) ListAll() ([]models.SavedResult, error) {
	return r.list("SELECT " + resultColumns + " FROM quiz_results ORDER BY created_at")
}

func (r *ResultRepository) list(query string, args ...interface{}) ([]models.SavedResult, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz results: %w", err)
	}
	defer rows.Close()

	results := []models.SavedResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", err)
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}

// ListTimestampsByUser returns when each of the user's results was saved
func (r *ResultRepository) ListTimestampsByUser(userID int64) ([]time.Time, error) {
	rows, err := r.db.Query("SELECT created_at FROM quiz_results WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query result timestamps: %w", err)
	}
	defer rows.Close()

	var timestamps []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("failed to scan result timestamp: %w", err)
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, rows.Err()
}

// ListLocationsByUser returns the location of each of the user's results
func (r *ResultRepository) ListLocationsByUser(userID int64) ([]models.Location, error) {
	rows, err := r.db.Query("SELECT latitude, longitude FROM quiz_results WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query result locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.Lat, &loc.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan result location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// CountByUser returns how many results a user has saved
func (r *ResultRepository) CountByUser(userID int64) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM quiz_results WHERE user_id = ?", userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quiz results: %w", err)
	}
	return count, nil
}
