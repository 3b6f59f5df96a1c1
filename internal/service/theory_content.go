package service

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"sluchapp/internal/models"
)

//go:embed theory_content.yaml
var defaultTheoryContent []byte

// TheoryContent is the seed file format for theory topics
type TheoryContent struct {
	Version int                 `yaml:"version"`
	Topics  []TheoryContentItem `yaml:"topics"`
}

type TheoryContentItem struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Icon     string `yaml:"icon"`
	Tutorial struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		ImageURL    string `yaml:"image_url"`
	} `yaml:"tutorial"`
}

// LoadTheoryContent reads a theory content file. An empty path loads the built-in content.
func LoadTheoryContent(path string) (*TheoryContent, error) {
	if path == "" {
		return ParseTheoryContent(defaultTheoryContent)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theory content: %w", err)
	}
	return ParseTheoryContent(data)
}

// ParseTheoryContent decodes and validates a single YAML document
func ParseTheoryContent(data []byte) (*TheoryContent, error) {
	var content TheoryContent
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&content); err != nil {
		return nil, fmt.Errorf("parse theory content: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse theory content: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse theory content: %w", err)
	}

	seen := make(map[string]bool, len(content.Topics))
	for i, item := range content.Topics {
		if item.ID == "" || item.Title == "" {
			return nil, fmt.Errorf("theory topic %d: id and title are required", i+1)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("theory topic %q is defined twice", item.ID)
		}
		seen[item.ID] = true
	}
	return &content, nil
}

// topic converts an item to its model; items keep file order
func (item TheoryContentItem) topic(order int) models.TheoryTopic {
	icon := item.Icon
	if icon == "" {
		icon = models.DefaultIconName
	}
	return models.TheoryTopic{ID: item.ID, Title: item.Title, IconName: icon, SortOrder: order}
}

func (item TheoryContentItem) tutorial() models.TheoryTutorial {
	title := item.Tutorial.Title
	if title == "" {
		title = item.Title
	}
	return models.TheoryTutorial{
		TopicID:     item.ID,
		Title:       title,
		Description: item.Tutorial.Description,
		ImageURL:    item.Tutorial.ImageURL,
	}
}
