package repository

import (
	"database/sql"
	"fmt"

	"sluchapp/internal/database"
	"sluchapp/internal/models"
)

// TheoryRepository handles database operations for theory topics and tutorials
type TheoryRepository struct {
	db database.DBTX
}

// NewTheoryRepository creates a new theory repository
func NewTheoryRepository(db database.DBTX) *TheoryRepository {
	return &TheoryRepository{db: db}
}

// ListTopics returns all topics in display order
func (r *TheoryRepository) ListTopics() ([]models.TheoryTopic, error) {
	query := `
		SELECT id, title, icon_name, sort_order
		FROM theory_topics
		ORDER BY sort_order, title
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query theory topics: %w", err)
	}
	defer rows.Close()

	topics := []models.TheoryTopic{}
	for rows.Next() {
		var t models.TheoryTopic
		if err := rows.Scan(&t.ID, &t.Title, &t.IconName, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan theory topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// CountTopics returns the number of stored topics
func (r *TheoryRepository) CountTopics() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM theory_topics").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count theory topics: %w", err)
	}
	return count, nil
}

// CreateTopic inserts a topic
func (r *TheoryRepository) CreateTopic(topic models.TheoryTopic) error {
	if topic.IconName == "" {
		topic.IconName = models.DefaultIconName
	}
	query := "INSERT INTO theory_topics (id, title, icon_name, sort_order) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, topic.ID, topic.Title, topic.IconName, topic.SortOrder); err != nil {
		return fmt.Errorf("failed to create theory topic %s: %w", topic.ID, err)
	}
	return nil
}

// GetTutorial retrieves the tutorial for a topic
func (r *TheoryRepository) GetTutorial(topicID string) (*models.TheoryTutorial, error) {
	query := `
		SELECT topic_id, title, description, image_url
		FROM theory_tutorials
		WHERE topic_id = ?
	`
	t := &models.TheoryTutorial{}
	err := r.db.QueryRow(query, topicID).Scan(&t.TopicID, &t.Title, &t.Description, &t.ImageURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theory tutorial: %w", err)
	}
	return t, nil
}

// ListTutorials returns every tutorial ordered by topic
func (r *TheoryRepository) ListTutorials() ([]models.TheoryTutorial, error) {
	rows, err := r.db.Query("SELECT topic_id, title, description, image_url FROM theory_tutorials ORDER BY topic_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query theory tutorials: %w", err)
	}
	defer rows.Close()

	tutorials := []models.TheoryTutorial{}
	for rows.Next() {
		var t models.TheoryTutorial
		if err := rows.Scan(&t.TopicID, &t.Title, &t.Description, &t.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan theory tutorial: %w", err)
		}
		tutorials = append(tutorials, t)
	}
	return tutorials, rows.Err()
}

// CreateTutorial inserts the tutorial for an existing topic
func (r *TheoryRepository) CreateTutorial(tutorial models.TheoryTutorial) error {
	query := "INSERT INTO theory_tutorials (topic_id, title, description, image_url) VALUES (?, ?, ?, ?)"
	_, err := r.db.Exec(query, tutorial.TopicID, tutorial.Title, tutorial.Description, tutorial.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to create theory tutorial %s: %w", tutorial.TopicID, err)
	}
	return nil
}
