package progression

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// Ledger appends to and reads the user_rewards table. Rows are immutable:
// every write is a new row, so concurrent writers never conflict, and all
// aggregates (total XP, boost points, streaks) are recomputed from the rows
// on read rather than cached.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// RecordReward appends one reward event. It is the only write path into the
// ledger. Failures are reported to the caller and never retried here.
func (l *Ledger) RecordReward(userID uuid.UUID, date string, source models.RewardSource, xp, boostPoints int, meta models.RewardMetadata) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode reward metadata: %w", err)
	}

	_, err = l.db.Exec(
		`INSERT INTO user_rewards (user_id, date, source, xp, streak_points, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, date, source, xp, boostPoints, metaJSON,
	)
	if err != nil {
		return fmt.Errorf("record reward: %w", err)
	}
	return nil
}

// TotalXP sums XP over every ledger row for the user.
func (l *Ledger) TotalXP(userID uuid.UUID) (int, error) {
	var total int
	err := l.db.QueryRow(
		`SELECT COALESCE(SUM(xp), 0) FROM user_rewards WHERE user_id = $1`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum xp: %w", err)
	}
	return total, nil
}

// TotalBoostPoints sums boost points over every ledger row for the user.
func (l *Ledger) TotalBoostPoints(userID uuid.UUID) (int, error) {
	var total int
	err := l.db.QueryRow(
		`SELECT COALESCE(SUM(streak_points), 0) FROM user_rewards WHERE user_id = $1`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum boost points: %w", err)
	}
	return total, nil
}

// DayEvents returns the (day, boost points) pairs the streak aggregator
// consumes.
func (l *Ledger) DayEvents(userID uuid.UUID) ([]DayEvent, error) {
	rows, err := l.db.Query(
		`SELECT to_char(date, 'YYYY-MM-DD'), streak_points
		 FROM user_rewards WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list day events: %w", err)
	}
	defer rows.Close()

	var events []DayEvent
	for rows.Next() {
		var e DayEvent
		if err := rows.Scan(&e.Date, &e.BoostPoints); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListRewards returns the user's reward history, newest first.
func (l *Ledger) ListRewards(userID uuid.UUID) ([]models.RewardEvent, error) {
	rows, err := l.db.Query(
		`SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), source, xp, streak_points, metadata, created_at
		 FROM user_rewards
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	var events []models.RewardEvent
	for rows.Next() {
		var e models.RewardEvent
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Source, &e.XP, &e.BoostPoints, &metaJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Metadata, err = decodeRewardMetadata(metaJSON); err != nil {
			return nil, fmt.Errorf("reward %d: %w", e.ID, err)
		}
		events = append(events, e)
	}
	if events == nil {
		events = []models.RewardEvent{}
	}
	return events, rows.Err()
}

// decodeRewardMetadata parses a row's metadata column; NULL decodes to the
// zero value.
func decodeRewardMetadata(raw []byte) (models.RewardMetadata, error) {
	var meta models.RewardMetadata
	if len(raw) == 0 {
		return meta, nil
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return models.RewardMetadata{}, fmt.Errorf("decode reward metadata: %w", err)
	}
	return meta, nil
}

// EarnedPages returns the page indexes a user has already been rewarded for
// within a subtopic's notes, so re-reading a page never grants XP twice.
func (l *Ledger) EarnedPages(userID uuid.UUID, subtopicID int64) (map[int]bool, error) {
	rows, err := l.db.Query(
		`SELECT metadata->>'page_index'
		 FROM user_rewards
		 WHERE user_id = $1 AND source = $2 AND metadata->>'subtopic_id' = $3
		   AND metadata ? 'page_index'`,
		userID, models.SourceNotes, fmt.Sprintf("%d", subtopicID),
	)
	if err != nil {
		return nil, fmt.Errorf("list earned pages: %w", err)
	}
	defer rows.Close()

	pages := make(map[int]bool)
	for rows.Next() {
		var page int
		if err := rows.Scan(&page); err != nil {
			return nil, err
		}
		pages[page] = true
	}
	return pages, rows.Err()
}

// BoostLeaderboard ranks users by their summed boost points. The ranking is
// derived on every read — nothing here is stored.
func (l *Ledger) BoostLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := l.db.Query(
		`SELECT u.id, u.email, COALESCE(SUM(r.streak_points), 0) AS boost,
		        ROW_NUMBER() OVER (ORDER BY COALESCE(SUM(r.streak_points), 0) DESC) AS rank
		 FROM users u
		 LEFT JOIN user_rewards r ON r.user_id = u.id
		 GROUP BY u.id, u.email
		 ORDER BY boost DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("boost leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var email string
		if err := rows.Scan(&e.UserID, &email, &e.BoostPoints, &e.Rank); err != nil {
			return nil, err
		}
		e.Username = models.User{Email: email}.Username()
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, rows.Err()
}

// JoinDate reads the user's signup day, the anchor for streaks and daily
// quiz backfill.
func (l *Ledger) JoinDate(userID uuid.UUID) (time.Time, error) {
	var createdAt time.Time
	err := l.db.QueryRow(
		`SELECT created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&createdAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("get join date: %w", err)
	}
	return createdAt, nil
}
