package quiz

import (
	"math/rand"
	"testing"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

func TestNextMockDifficulty(t *testing.T) {
	tests := []struct {
		current models.Difficulty
		correct bool
		want    models.Difficulty
	}{
		{models.DifficultyEasy, true, models.DifficultyMedium},
		{models.DifficultyMedium, true, models.DifficultyHard},
		{models.DifficultyHard, true, models.DifficultyHard},
		{models.DifficultyHard, false, models.DifficultyMedium},
		{models.DifficultyMedium, false, models.DifficultyEasy},
		{models.DifficultyEasy, false, models.DifficultyEasy},
	}

	for _, tt := range tests {
		if got := NextMockDifficulty(tt.current, tt.correct); got != tt.want {
			t.Errorf("NextMockDifficulty(%q, %v) = %q, want %q", tt.current, tt.correct, got, tt.want)
		}
	}
}

func mockBank(perTier int) []models.Question {
	var bank []models.Question
	id := int64(0)
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		for i := 0; i < perTier; i++ {
			id++
			bank = append(bank, models.Question{ID: id, Difficulty: d})
		}
	}
	return bank
}

func TestBuildMockTestPoolRampsTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sample, pool, err := BuildMockTestPool(rng, mockBank(10), 9)
	if err != nil {
		t.Fatal(err)
	}

	if sample == nil || sample.Difficulty != models.DifficultyEasy {
		t.Fatalf("sample = %+v, want an easy question", sample)
	}
	if len(pool) != 9 {
		t.Fatalf("pool length = %d, want 9", len(pool))
	}

	wantTiers := []models.Difficulty{
		models.DifficultyEasy, models.DifficultyEasy, models.DifficultyEasy,
		models.DifficultyMedium, models.DifficultyMedium, models.DifficultyMedium,
		models.DifficultyHard, models.DifficultyHard, models.DifficultyHard,
	}
	for i, q := range pool {
		if q.Difficulty != wantTiers[i] {
			t.Errorf("pool[%d] difficulty = %q, want %q", i, q.Difficulty, wantTiers[i])
		}
	}
}

func TestBuildMockTestPoolNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sample, pool, err := BuildMockTestPool(rng, mockBank(4), 9)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[int64]bool{sample.ID: true}
	for _, q := range pool {
		if seen[q.ID] {
			t.Fatalf("question %d dealt twice", q.ID)
		}
		seen[q.ID] = true
	}
}

// When a tier runs dry the draw falls back instead of stalling.
func TestBuildMockTestPoolFallback(t *testing.T) {
	var bank []models.Question
	for i := int64(1); i <= 12; i++ {
		bank = append(bank, models.Question{ID: i, Difficulty: models.DifficultyEasy})
	}

	rng := rand.New(rand.NewSource(2))
	sample, pool, err := BuildMockTestPool(rng, bank, 9)
	if err != nil {
		t.Fatal(err)
	}
	if sample == nil || len(pool) != 9 {
		t.Fatalf("sample=%v pool=%d, want sample and 9 questions", sample, len(pool))
	}
	for i, q := range pool {
		if q.Difficulty != models.DifficultyEasy {
			t.Errorf("pool[%d] difficulty = %q, want easy (only tier available)", i, q.Difficulty)
		}
	}
}

func TestBuildMockTestPoolBankTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	if _, _, err := BuildMockTestPool(rng, nil, 9); err == nil {
		t.Error("empty bank built a pool")
	}
	if _, _, err := BuildMockTestPool(rng, mockBank(2), 9); err == nil {
		t.Error("undersized bank built a full pool")
	}
}
