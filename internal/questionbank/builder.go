// Package questionbank builds the fixed question pools for each exercise category.
package questionbank

import "sluchapp/internal/models"

const (
	intervalPrompt = "What interval is this?"
	chordPrompt    = "What chord is this?"

	LevelBasic    = "basic"
	LevelAdvanced = "advanced"
)

// AssetResolver maps an audio asset name to a playable reference.
// Names that cannot be resolved map to the empty AudioRef.
type AssetResolver interface {
	Resolve(name string) models.AudioRef
}

// item is a single pool entry: the audio asset and its answer label
type item struct {
	asset string
	label string
}

var basicIntervals = []item{
	{"interval_unison", "Unison"},
	{"interval_major_second", "Major second"},
	{"interval_minor_second", "Minor second"},
	{"interval_major_third", "Major third"},
	{"interval_minor_third", "Minor third"},
}

var advancedIntervals = []item{
	{"interval_perfect_fourth", "Perfect fourth"},
	{"interval_tritone", "Tritone"},
	{"interval_perfect_fifth", "Perfect fifth"},
	{"interval_major_sixth", "Major sixth"},
	{"interval_minor_sixth", "Minor sixth"},
	{"interval_major_seventh", "Major seventh"},
	{"interval_minor_seventh", "Minor seventh"},
	{"interval_octave", "Octave"},
}

var basicChords = []item{
	{"chord_major", "Major"},
	{"chord_minor", "Minor"},
}

var advancedChords = []item{
	{"chord_diminished", "Diminished"},
	{"chord_augmented", "Augmented"},
	{"chord_major_seventh", "Major 7th"},
	{"chord_minor_seventh", "Minor 7th"},
	{"chord_dominant_seventh", "Dominant 7th"},
}

var levelOptions = map[models.Category][]models.Level{
	models.CategoryIntervals: {
		{Key: LevelBasic, Label: "Podstawowe interwały"},
		{Key: LevelAdvanced, Label: "Wszystkie interwały"},
	},
	models.CategoryChords: {
		{Key: LevelBasic, Label: "Akordy podstawowe"},
		{Key: LevelAdvanced, Label: "Akordy zaawansowane"},
	},
	models.CategoryScales: {
		{Key: LevelBasic, Label: "Skale podstawowe"},
		{Key: LevelAdvanced, Label: "Skale zaawansowane"},
	},
	models.CategoryTempoRhythm: {
		{Key: "tempo", Label: "Tempo"},
		{Key: "rhythm", Label: "Rytm"},
	},
	models.CategoryAbsolutePitch: {
		{Key: "default", Label: "Rozpoznawanie wysokości dźwięku"},
	},
}

// Builder produces question pools with audio resolved through an AssetResolver
type Builder struct {
	resolver AssetResolver
}

// NewBuilder creates a builder backed by the given resolver
func NewBuilder(resolver AssetResolver) *Builder {
	return &Builder{resolver: resolver}
}

// BuildPool returns one question per pool item for the category and level.
// Any level other than "basic" selects the advanced pool. Categories without
// content return an empty pool.
func (b *Builder) BuildPool(category models.Category, level string) []models.Question {
	switch category {
	case models.CategoryIntervals:
		return b.build(intervalPrompt, selectPool(level, basicIntervals, advancedIntervals))
	case models.CategoryChords:
		return b.build(chordPrompt, selectPool(level, basicChords, advancedChords))
	default:
		return []models.Question{}
	}
}

func selectPool(level string, basic, extra []item) []item {
	if level == LevelBasic {
		return basic
	}
	pool := make([]item, 0, len(basic)+len(extra))
	pool = append(pool, basic...)
	return append(pool, extra...)
}

func (b *Builder) build(prompt string, pool []item) []models.Question {
	labels := make([]string, len(pool))
	for i, it := range pool {
		labels[i] = it.label
	}

	questions := make([]models.Question, len(pool))
	for i, it := range pool {
		// Each question gets its own copy so callers cannot alias answer lists
		answers := make([]string, len(labels))
		copy(answers, labels)
		questions[i] = models.Question{
			Prompt:             prompt,
			Answers:            answers,
			CorrectAnswerIndex: i,
			Audio:              b.resolve(it.asset),
		}
	}
	return questions
}

func (b *Builder) resolve(name string) models.AudioRef {
	if b.resolver == nil {
		return ""
	}
	return b.resolver.Resolve(name)
}

// Levels returns the level options offered for a category
func Levels(category models.Category) []models.Level {
	levels := levelOptions[category]
	out := make([]models.Level, len(levels))
	copy(out, levels)
	return out
}

// AssetNames lists every audio asset referenced by any pool
func AssetNames() []string {
	var names []string
	for _, pool := range [][]item{basicIntervals, advancedIntervals, basicChords, advancedChords} {
		for _, it := range pool {
			names = append(names, it.asset)
		}
	}
	return names
}
