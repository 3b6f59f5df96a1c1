package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"sluchapp/internal/database"
	"sluchapp/internal/models"
	"sluchapp/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version         string           `json:"version"`
	ExportedAt      time.Time        `json:"exported_at"`
	Users           []UserBackup     `json:"users"`
	Results         []ResultBackup   `json:"results"`
	TheoryTopics    []TopicBackup    `json:"theory_topics"`
	TheoryTutorials []TutorialBackup `json:"theory_tutorials"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResultBackup represents a saved quiz result for backup
type ResultBackup struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	Category        string    `json:"category"`
	Level           string    `json:"level"`
	CorrectAnswers  int       `json:"correct_answers"`
	TotalQuestions  int       `json:"total_questions"`
	Accuracy        float64   `json:"accuracy"`
	DurationSeconds float64   `json:"duration_seconds"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	CreatedAt       time.Time `json:"created_at"`
}

// TopicBackup represents a theory topic for backup
type TopicBackup struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IconName  string `json:"icon_name"`
	SortOrder int    `json:"sort_order"`
}

// TutorialBackup represents a theory tutorial for backup
type TutorialBackup struct {
	TopicID     string `json:"topic_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportTo(file); err != nil {
		return err
	}
	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportTo writes a complete backup of the database as indented JSON
func (s *BackupService) ExportTo(w io.Writer) error {
	log.Println("Starting database export...")

	backup, err := s.collect()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d results, %d theory topics, %d tutorials",
		len(backup.Users), len(backup.Results), len(backup.TheoryTopics), len(backup.TheoryTutorials))
	return nil
}

func (s *BackupService) collect() (*BackupData, error) {
	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
	}

	users, err := repository.NewUserRepository(s.db).GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:            u.ID,
			Email:         u.Email,
			Name:          u.Name,
			OAuthProvider: u.OAuthProvider,
			OAuthSubject:  u.OAuthSubject,
			CreatedAt:     u.CreatedAt,
			UpdatedAt:     u.UpdatedAt,
		})
	}

	results, err := repository.NewResultRepository(s.db).ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to export results: %w", err)
	}
	for _, r := range results {
		backup.Results = append(backup.Results, ResultBackup{
			ID:              r.ID,
			UserID:          r.UserID,
			Category:        string(r.Category),
			Level:           r.Level,
			CorrectAnswers:  r.CorrectAnswers,
			TotalQuestions:  r.TotalQuestions,
			Accuracy:        r.Accuracy,
			DurationSeconds: r.DurationSeconds,
			Latitude:        r.Location.Lat,
			Longitude:       r.Location.Lon,
			CreatedAt:       r.CreatedAt,
		})
	}

	theory := repository.NewTheoryRepository(s.db)
	topics, err := theory.ListTopics()
	if err != nil {
		return nil, fmt.Errorf("failed to export theory topics: %w", err)
	}
	for _, t := range topics {
		backup.TheoryTopics = append(backup.TheoryTopics, TopicBackup(t))
	}

	tutorials, err := theory.ListTutorials()
	if err != nil {
		return nil, fmt.Errorf("failed to export theory tutorials: %w", err)
	}
	for _, t := range tutorials {
		backup.TheoryTutorials = append(backup.TheoryTutorials, TutorialBackup(t))
	}

	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	log.Printf("Starting database import from %s...", inputPath)
	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup into an empty database in one transaction
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(func(tx *database.Tx) error {
		users := repository.NewUserRepository(tx)
		for _, u := range backup.Users {
			if err := users.InsertUser(models.User{
				ID:            u.ID,
				Email:         u.Email,
				Name:          u.Name,
				OAuthProvider: u.OAuthProvider,
				OAuthSubject:  u.OAuthSubject,
				CreatedAt:     u.CreatedAt,
				UpdatedAt:     u.UpdatedAt,
			}); err != nil {
				return err
			}
		}

		results := repository.NewResultRepository(tx)
		for _, r := range backup.Results {
			if err := results.Create(&models.SavedResult{
				ID:              r.ID,
				UserID:          r.UserID,
				Category:        models.Category(r.Category),
				Level:           r.Level,
				CorrectAnswers:  r.CorrectAnswers,
				TotalQuestions:  r.TotalQuestions,
				Accuracy:        r.Accuracy,
				DurationSeconds: r.DurationSeconds,
				Location:        models.Location{Lat: r.Latitude, Lon: r.Longitude},
				CreatedAt:       r.CreatedAt,
			}); err != nil {
				return err
			}
		}

		theory := repository.NewTheoryRepository(tx)
		for _, t := range backup.TheoryTopics {
			if err := theory.CreateTopic(models.TheoryTopic(t)); err != nil {
				return err
			}
		}
		for _, t := range backup.TheoryTutorials {
			if err := theory.CreateTutorial(models.TheoryTutorial(t)); err != nil {
				return err
			}
		}

		return resetSequences(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}

	log.Printf("Imported: %d users, %d results, %d theory topics, %d tutorials",
		len(backup.Users), len(backup.Results), len(backup.TheoryTopics), len(backup.TheoryTutorials))
	return nil
}

// resetSequences moves the PostgreSQL users sequence past the imported IDs.
// SQLite and MySQL advance their counters on explicit inserts.
func resetSequences(tx *database.Tx) error {
	if tx.GetDialect().MigrationsSubdir() != "postgres" {
		return nil
	}
	_, err := tx.Exec("SELECT setval(pg_get_serial_sequence('users', 'id'), COALESCE((SELECT MAX(id) FROM users), 0) + 1, false)")
	return err
}
