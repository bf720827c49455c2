package quiz

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// Timed bonus questions: a decaying pot that starts at BonusStartXP and
// loses BonusDecayPerSec every elapsed second until the countdown expires.
const (
	BonusStartXP          = 50
	BonusDecayPerSec      = 4
	BonusCountdownSeconds = 12
)

// Boost points on a first-ever subtopic attempt.
const FirstAttemptThreshold = 0.70

// BaseXP returns the XP for a correct answer by difficulty tier.
func BaseXP(difficulty models.Difficulty) int {
	switch difficulty {
	case models.DifficultyEasy:
		return 10
	case models.DifficultyHard:
		return 30
	default:
		return 20
	}
}

// QuestionXP applies the in-quiz answer-streak multiplier to the base XP:
// base * (1 + 0.1 * answerStreak), rounded to the nearest integer.
// answerStreak counts the consecutive correct answers before this one.
func QuestionXP(difficulty models.Difficulty, answerStreak int) int {
	base := float64(BaseXP(difficulty))
	return int(math.Round(base * (1 + float64(answerStreak)*0.1)))
}

// BonusValue returns the remaining bonus pot after elapsed seconds; zero
// once the countdown has expired.
func BonusValue(elapsedSeconds int) int {
	if elapsedSeconds < 0 || elapsedSeconds >= BonusCountdownSeconds {
		return 0
	}
	v := BonusStartXP - elapsedSeconds*BonusDecayPerSec
	if v < 0 {
		return 0
	}
	return v
}

// PickBonusIndexes selects roughly one in three question indexes to carry
// the timed bonus, chosen at quiz start from the injected random source.
func PickBonusIndexes(rng *rand.Rand, questionCount int) []int {
	if questionCount <= 0 {
		return []int{}
	}
	count := (questionCount + 2) / 3
	perm := rng.Perm(questionCount)[:count]
	sort.Ints(perm)
	return perm
}

// ShouldAddBonus decides whether to opportunistically promote the next
// question to a bonus question: the answer streak has reached 2 and a coin
// flip succeeds.
func ShouldAddBonus(rng *rand.Rand, answerStreak int) bool {
	return answerStreak >= 2 && rng.Intn(2) == 0
}

// AttemptScore is the outcome of scoring one full quiz attempt.
type AttemptScore struct {
	XP              int
	CorrectAnswers  int
	MaxAnswerStreak int
	Accuracy        float64
}

// ScoreAttempt replays the attempt's answers in order, accumulating
// per-question XP, the streak multiplier, and any timed bonuses. An
// incorrect answer resets the in-quiz streak and earns nothing.
func ScoreAttempt(answers []models.AnswerResult, bonusIndexes []int) AttemptScore {
	bonus := make(map[int]bool, len(bonusIndexes))
	for _, i := range bonusIndexes {
		bonus[i] = true
	}

	var score AttemptScore
	streak := 0
	for _, a := range answers {
		if !a.Correct {
			streak = 0
			continue
		}

		score.XP += QuestionXP(a.Difficulty, streak)
		if bonus[a.QuestionIndex] {
			score.XP += BonusValue(a.ElapsedSeconds)
		}

		streak++
		score.CorrectAnswers++
		if streak > score.MaxAnswerStreak {
			score.MaxAnswerStreak = streak
		}
	}

	if len(answers) > 0 {
		score.Accuracy = float64(score.CorrectAnswers) / float64(len(answers))
	}
	return score
}

// FirstAttemptBoost computes the boost points granted when a subtopic quiz
// finishes. Only the first-ever attempt at a subtopic pays out: a perfect
// score pays the answer streak achieved, a score of 70% or better pays 2.
// Repeat attempts pay nothing regardless of score.
func FirstAttemptBoost(firstAttempt bool, accuracy float64, maxAnswerStreak int) int {
	if !firstAttempt {
		return 0
	}
	if accuracy >= 1.0 {
		return maxAnswerStreak
	}
	if accuracy >= FirstAttemptThreshold {
		return 2
	}
	return 0
}
