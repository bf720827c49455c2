package quiz

import (
	"fmt"
	"math/rand"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// Mock tests are longer, timed, and ungraded for rewards: a warm-up sample
// question followed by a pool that ramps through the difficulty tiers, with
// one minute on the clock per question.
const (
	MockTestQuestionCount      = 30
	MockTestSecondsPerQuestion = 60
)

// NextMockDifficulty steps the adaptive difficulty track one tier: a
// correct answer moves toward hard, a wrong answer (or a timeout) back
// toward easy. The track saturates at both ends.
func NextMockDifficulty(current models.Difficulty, correct bool) models.Difficulty {
	if correct {
		if current == models.DifficultyEasy {
			return models.DifficultyMedium
		}
		return models.DifficultyHard
	}
	if current == models.DifficultyHard {
		return models.DifficultyMedium
	}
	return models.DifficultyEasy
}

// BuildMockTestPool deals a mock test from the question bank: one easy
// sample first, then count questions in tiers that ramp upward via the
// adaptive track, a third of the pool per tier. When the preferred tier
// runs dry the draw falls back to a neighbouring tier rather than stalling.
// Errors when the bank cannot fill the pool.
func BuildMockTestPool(rng *rand.Rand, bank []models.Question, count int) (*models.Question, []models.Question, error) {
	tiers := make(map[models.Difficulty][]models.Question)
	for _, q := range bank {
		tiers[q.Difficulty] = append(tiers[q.Difficulty], q)
	}
	for d := range tiers {
		qs := tiers[d]
		rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	}

	sample := draw(tiers, models.DifficultyEasy)
	if sample == nil {
		return nil, nil, fmt.Errorf("build mock test: empty question bank")
	}

	pool := make([]models.Question, 0, count)
	current := models.DifficultyEasy
	perTier := (count + 2) / 3
	for len(pool) < count {
		if len(pool) > 0 && len(pool)%perTier == 0 {
			current = NextMockDifficulty(current, true)
		}
		q := draw(tiers, current)
		if q == nil {
			return nil, nil, fmt.Errorf("build mock test: bank exhausted at %d of %d questions", len(pool), count)
		}
		pool = append(pool, *q)
	}
	return sample, pool, nil
}

// draw pops from the preferred tier, falling back to easier tiers first and
// harder ones last. Nil when every tier is empty.
func draw(tiers map[models.Difficulty][]models.Question, preferred models.Difficulty) *models.Question {
	for _, d := range fallbackOrder(preferred) {
		if qs := tiers[d]; len(qs) > 0 {
			q := qs[len(qs)-1]
			tiers[d] = qs[:len(qs)-1]
			return &q
		}
	}
	return nil
}

func fallbackOrder(preferred models.Difficulty) []models.Difficulty {
	switch preferred {
	case models.DifficultyEasy:
		return []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	case models.DifficultyHard:
		return []models.Difficulty{models.DifficultyHard, models.DifficultyMedium, models.DifficultyEasy}
	default:
		return []models.Difficulty{models.DifficultyMedium, models.DifficultyEasy, models.DifficultyHard}
	}
}
