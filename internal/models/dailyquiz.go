package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyQuiz is one row per (user, calendar day) in dailyquizzes. Rows are
// backfilled from the user's join date so the streak calendar has no gaps;
// a backfill never overwrites an existing row.
type DailyQuiz struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	// StreakPoints is legacy: superseded by the reward ledger but still
	// written on completion for backward compatibility.
	StreakPoints int       `json:"streak_points"`
	CreatedAt    time.Time `json:"created_at"`
}

// DailyQuizQuestionCount is the fixed size of a daily quiz.
const DailyQuizQuestionCount = 5

type SubmitDailyQuizRequest struct {
	CorrectAnswers int  `json:"correct_answers"`
	Completed      bool `json:"completed"`
}

type SubmitDailyQuizResponse struct {
	XPAwarded          int  `json:"xp_awarded"`
	BoostPointsAwarded int  `json:"boost_points_awarded"`
	FullMarks          bool `json:"full_marks"`
	LevelsGained       int  `json:"levels_gained"`
}
