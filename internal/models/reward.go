package models

import (
	"time"

	"github.com/google/uuid"
)

// ── Reward Sources ────────────────────────────────────────

// RewardSource identifies the learning action that produced a ledger entry.
type RewardSource string

const (
	SourceDailyQuiz    RewardSource = "daily_quiz"
	SourceSubtopicQuiz RewardSource = "subtopic_quiz"
	SourceNotes        RewardSource = "notes"
	SourceLevelUp      RewardSource = "level_up"
)

// RewardEvent is one immutable row in the user_rewards ledger. Total XP and
// total boost points for a user are always the sums over their events —
// never a cached counter. The boost-point column is named streak_points in
// the schema for historical reasons.
type RewardEvent struct {
	ID          int64          `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Date        string         `json:"date"` // calendar day, YYYY-MM-DD
	Source      RewardSource   `json:"source"`
	XP          int            `json:"xp"`
	BoostPoints int            `json:"boost_points"`
	Metadata    RewardMetadata `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

// RewardMetadata is the free-form payload attached to a ledger entry.
// Which fields are set depends on the source.
type RewardMetadata struct {
	SubtopicID   *int64   `json:"subtopic_id,omitempty"`
	PageIndex    *int     `json:"page_index,omitempty"`
	Accuracy     *float64 `json:"accuracy,omitempty"`
	FirstAttempt *bool    `json:"first_attempt,omitempty"`
	NewLevel     *int     `json:"new_level,omitempty"`
}

// ── Derived Progression State ─────────────────────────────

// LevelInfo is the pure projection of cumulative XP onto the level curve.
type LevelInfo struct {
	Level     int     `json:"level"`
	CurrentXP int     `json:"current_xp"`
	XPNeeded  int     `json:"xp_needed"`
	Progress  float64 `json:"progress"`
}

// StreakDay is one entry in the dense day-by-day streak calendar.
type StreakDay struct {
	DayOfWeek string `json:"day_of_week"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	IsToday   bool   `json:"is_today"`
}

// StreakData is the aggregate derived from the reward ledger: a gap-free
// calendar from join date through today plus current/longest streak counts.
type StreakData struct {
	StreakHistory []StreakDay     `json:"streak_history"`
	StreakDays    map[string]bool `json:"streak_days"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
}

type ProgressionResponse struct {
	TotalXP          int        `json:"total_xp"`
	TotalBoostPoints int        `json:"total_boost_points"`
	LevelInfo        LevelInfo  `json:"level_info"`
	Streak           StreakData `json:"streak"`
}

// ── Level-Up Notices ──────────────────────────────────────

// PendingLevelUps is the ordered queue of crossed-but-unannounced levels,
// persisted under the levelUpPending key so notices survive app restarts.
type PendingLevelUps struct {
	Levels []int `json:"levels"`
}

// LevelUpNotice is what the client shows when a pending level is popped.
type LevelUpNotice struct {
	Level       int `json:"level"`
	BoostPoints int `json:"boost_points"`
	Remaining   int `json:"remaining"`
}

// ── Leaderboard (derived, never stored) ───────────────────

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	BoostPoints   int       `json:"boost_points"`
	IsCurrentUser bool      `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
