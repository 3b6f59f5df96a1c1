package models

import "strings"

// TheoryTopic is a tile on the music theory screen
type TheoryTopic struct {
	ID        string
	Title     string
	IconName  string
	SortOrder int
}

// TheoryTutorial is the detail page behind a theory topic
type TheoryTutorial struct {
	TopicID     string
	Title       string
	Description string
	ImageURL    string
}

// DefaultIconName is used when a topic has no icon
const DefaultIconName = "menu_book"

// Emoji maps the topic icon name to the glyph shown on its tile
func (t TheoryTopic) Emoji() string {
	switch strings.ToLower(t.IconName) {
	case "notes", "czytanie nut":
		return "🎵"
	case "compare_arrows":
		return "↔️"
	case "piano", "keyboard", "music_note":
		return "🎹"
	case "timer":
		return "⏱️"
	case "book", "menu_book":
		return "📖"
	default:
		return "❓"
	}
}
