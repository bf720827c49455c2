package models

import (
	"time"

	"github.com/google/uuid"
)

// ── Content ───────────────────────────────────────────────

type Topic struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Subtopic struct {
	ID      int64  `json:"id"`
	TopicID int64  `json:"topic_id"`
	Title   string `json:"title"`
}

// Difficulty tiers drive base XP for a correct answer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Question struct {
	ID            int64      `json:"id"`
	SubtopicID    int64      `json:"subtopic_id"`
	Question      string     `json:"question"`
	Choices       []string   `json:"choices"`
	Correct       int        `json:"correct"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
	Level         string     `json:"level"`
	Specification string     `json:"specification"`
}

// ── Per-Subtopic Progress ─────────────────────────────────

// QuizProgress is overwritten on every attempt, unlike the reward ledger.
type QuizProgress struct {
	UserID         uuid.UUID `json:"user_id"`
	SubtopicID     int64     `json:"subtopic_id"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Progress       float64   `json:"progress"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

type NotesProgress struct {
	UserID      uuid.UUID `json:"user_id"`
	SubtopicID  int64     `json:"subtopic_id"`
	Page        int       `json:"page"`
	Progress    float64   `json:"progress"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// ── Quiz Attempt Submission ───────────────────────────────

// AnswerResult is one question's outcome within a quiz attempt, in the
// order the questions were answered.
type AnswerResult struct {
	QuestionIndex  int        `json:"question_index"`
	Difficulty     Difficulty `json:"difficulty"`
	Correct        bool       `json:"correct"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
}

type StartQuizResponse struct {
	Questions        []Question `json:"questions"`
	BonusIndexes     []int      `json:"bonus_indexes"`
	BonusCountdown   int        `json:"bonus_countdown_seconds"`
	BonusStartXP     int        `json:"bonus_start_xp"`
	BonusDecayPerSec int        `json:"bonus_decay_per_sec"`
}

type CompleteQuizRequest struct {
	SubtopicID   int64          `json:"subtopic_id"`
	Answers      []AnswerResult `json:"answers"`
	BonusIndexes []int          `json:"bonus_indexes"`
}

type CompleteQuizResponse struct {
	XPAwarded          int     `json:"xp_awarded"`
	BoostPointsAwarded int     `json:"boost_points_awarded"`
	Accuracy           float64 `json:"accuracy"`
	MaxAnswerStreak    int     `json:"max_answer_streak"`
	FirstAttempt       bool    `json:"first_attempt"`
	LevelsGained       int     `json:"levels_gained"`
}

// MockTestResponse is a dealt mock test: an ungraded warm-up sample plus
// the timed question pool. Mock tests grant no rewards.
type MockTestResponse struct {
	Sample             *Question  `json:"sample,omitempty"`
	Questions          []Question `json:"questions"`
	SecondsPerQuestion int        `json:"seconds_per_question"`
}

// ── Notes Submission ──────────────────────────────────────

type AdvanceNotesRequest struct {
	SubtopicID int64   `json:"subtopic_id"`
	Page       int     `json:"page"`
	Progress   float64 `json:"progress"`
}

type AdvanceNotesResponse struct {
	XPAwarded    int  `json:"xp_awarded"`
	AlreadyRead  bool `json:"already_read"`
	LevelsGained int  `json:"levels_gained"`
}
