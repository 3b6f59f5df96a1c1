package service

import (
	"errors"
	"fmt"
	"log"

	"sluchapp/internal/database"
	"sluchapp/internal/models"
	"sluchapp/internal/repository"
)

var ErrTopicNotFound = errors.New("theory topic not found")

// TheoryService serves the music theory screens
type TheoryService struct {
	db   *database.DB
	repo *repository.TheoryRepository
}

// NewTheoryService creates a new theory service
func NewTheoryService(db *database.DB) *TheoryService {
	return &TheoryService{db: db, repo: repository.NewTheoryRepository(db)}
}

// ListTopics returns all theory topics in display order
func (s *TheoryService) ListTopics() ([]models.TheoryTopic, error) {
	return s.repo.ListTopics()
}

// GetTutorial returns the tutorial for a topic
func (s *TheoryService) GetTutorial(topicID string) (*models.TheoryTutorial, error) {
	tutorial, err := s.repo.GetTutorial(topicID)
	if err != nil {
		return nil, err
	}
	if tutorial == nil {
		return nil, ErrTopicNotFound
	}
	return tutorial, nil
}

// SeedDefaultTopics inserts the built-in topics when no topics exist yet
func (s *TheoryService) SeedDefaultTopics() (int, error) {
	content, err := LoadTheoryContent("")
	if err != nil {
		return 0, err
	}
	return s.SeedTopics(content)
}

// SeedTopics inserts the topics of content when no topics exist yet
func (s *TheoryService) SeedTopics(content *TheoryContent) (int, error) {
	count, err := s.repo.CountTopics()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	err = s.db.WithTx(func(tx *database.Tx) error {
		repo := repository.NewTheoryRepository(tx)
		for i, item := range content.Topics {
			if err := repo.CreateTopic(item.topic(i + 1)); err != nil {
				return err
			}
			if err := repo.CreateTutorial(item.tutorial()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed theory topics: %w", err)
	}

	log.Printf("Seeded %d theory topics", len(content.Topics))
	return len(content.Topics), nil
}
