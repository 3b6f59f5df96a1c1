package quiz

import (
	"math/rand"
	"testing"

	"sluchapp/internal/models"
)

func testPool(n int) []models.Question {
	pool := make([]models.Question, n)
	answers := make([]string, n)
	for i := range answers {
		answers[i] = string(rune('A' + i))
	}
	for i := range pool {
		pool[i] = models.Question{Prompt: "Which?", Answers: answers, CorrectAnswerIndex: i}
	}
	return pool
}

func TestSamplerDraw(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(42)))
	pool := testPool(3)

	tests := []struct {
		name string
		pool []models.Question
		n    int
		want int
	}{
		{"draws n from pool", pool, 5, 5},
		{"more than pool size", pool, 10, 10},
		{"single", pool, 1, 1},
		{"zero count", pool, 0, 0},
		{"negative count", pool, -2, 0},
		{"empty pool", nil, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Draw(tt.pool, tt.n)
			if got == nil {
				t.Fatal("Draw() returned nil, want empty slice")
			}
			if len(got) != tt.want {
				t.Fatalf("len(Draw()) = %d, want %d", len(got), tt.want)
			}
			for _, q := range got {
				if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(tt.pool) {
					t.Errorf("drawn question not from pool: %+v", q)
				}
			}
		})
	}
}

func TestSamplerDeterministicWithSeed(t *testing.T) {
	pool := testPool(13)
	a := NewSampler(rand.New(rand.NewSource(7))).Draw(pool, 20)
	b := NewSampler(rand.New(rand.NewSource(7))).Draw(pool, 20)
	for i := range a {
		if a[i].CorrectAnswerIndex != b[i].CorrectAnswerIndex {
			t.Fatalf("draw %d differs with the same seed", i)
		}
	}
}

func TestSamplerSingleItemPool(t *testing.T) {
	got := NewSampler(nil).Draw(testPool(1), 4)
	for i, q := range got {
		if q.CorrectAnswerIndex != 0 {
			t.Errorf("draw %d index = %d, want 0", i, q.CorrectAnswerIndex)
		}
	}
}

func TestSamplerCoversPool(t *testing.T) {
	pool := testPool(5)
	seen := make(map[int]bool)
	for _, q := range NewSampler(rand.New(rand.NewSource(1))).Draw(pool, 500) {
		seen[q.CorrectAnswerIndex] = true
	}
	if len(seen) != len(pool) {
		t.Errorf("drew %d distinct items from %d over 500 draws", len(seen), len(pool))
	}
}
