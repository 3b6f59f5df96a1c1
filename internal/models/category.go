package models

import (
	"errors"
	"strings"
)

// Category is one of the ear-training exercise types
type Category string

const (
	CategoryIntervals     Category = "INTERVALS"
	CategoryChords        Category = "CHORDS"
	CategoryScales        Category = "SCALES"
	CategoryTempoRhythm   Category = "TEMPO_RHYTHM"
	CategoryAbsolutePitch Category = "ABSOLUTE_PITCH"
)

var ErrUnknownCategory = errors.New("unknown exercise category")

var categoryLabels = map[Category]string{
	CategoryIntervals:     "Interwały",
	CategoryChords:        "Akordy",
	CategoryScales:        "Skale",
	CategoryTempoRhythm:   "Tempo i rytm",
	CategoryAbsolutePitch: "Słuch Absolutny",
}

// Categories returns every category in menu order
func Categories() []Category {
	return []Category{
		CategoryIntervals,
		CategoryChords,
		CategoryScales,
		CategoryTempoRhythm,
		CategoryAbsolutePitch,
	}
}

// ParseCategory accepts a category name in any letter case
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryLabels[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Label returns the display name shown on the exercise menu
func (c Category) Label() string {
	return categoryLabels[c]
}

// Level is a difficulty option offered for a category
type Level struct {
	Key   string
	Label string
}
