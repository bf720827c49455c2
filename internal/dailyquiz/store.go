package dailyquiz

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListDates returns every availability date already recorded for the user.
func (s *Store) ListDates(userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT to_char(date, 'YYYY-MM-DD') FROM dailyquizzes WHERE user_id = $1 ORDER BY date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily quiz dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// InsertMissing creates a pending row for the date only if none exists.
// Existing rows — including completed ones — are never touched, so a
// backfill can never reset a user's history.
func (s *Store) InsertMissing(userID uuid.UUID, date string) error {
	_, err := s.db.Exec(
		`INSERT INTO dailyquizzes (user_id, date) VALUES ($1, $2)
		 ON CONFLICT (user_id, date) DO NOTHING`,
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("backfill daily quiz %s: %w", date, err)
	}
	return nil
}

// Get fetches the row for one (user, date); nil when absent.
func (s *Store) Get(userID uuid.UUID, date string) (*models.DailyQuiz, error) {
	var q models.DailyQuiz
	err := s.db.QueryRow(
		`SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), completed, streak_points, created_at
		 FROM dailyquizzes WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&q.ID, &q.UserID, &q.Date, &q.Completed, &q.StreakPoints, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily quiz: %w", err)
	}
	return &q, nil
}

// Upsert creates the row for the date, tolerating a concurrent create via
// the (user, date) conflict key, and returns the winning row.
func (s *Store) Upsert(userID uuid.UUID, date string) (*models.DailyQuiz, error) {
	var q models.DailyQuiz
	err := s.db.QueryRow(
		`INSERT INTO dailyquizzes (user_id, date) VALUES ($1, $2)
		 ON CONFLICT (user_id, date) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, to_char(date, 'YYYY-MM-DD'), completed, streak_points, created_at`,
		userID, date,
	).Scan(&q.ID, &q.UserID, &q.Date, &q.Completed, &q.StreakPoints, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert daily quiz: %w", err)
	}
	return &q, nil
}

// MarkCompleted flags the day's row as completed and writes the legacy
// streak_points column for older reads. The update only matches a pending
// row, so completion happens at most once per day: it reports false when
// the day was already completed (or has no row), and only the winner of a
// racing double submit sees true.
func (s *Store) MarkCompleted(userID uuid.UUID, date string, streakPoints int) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE dailyquizzes SET completed = TRUE, streak_points = $3
		 WHERE user_id = $1 AND date = $2 AND completed = FALSE`,
		userID, date, streakPoints,
	)
	if err != nil {
		return false, fmt.Errorf("mark daily quiz completed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark daily quiz completed: %w", err)
	}
	return n > 0, nil
}

// JoinDate reads the user's signup day.
func (s *Store) JoinDate(userID uuid.UUID) (time.Time, error) {
	var createdAt time.Time
	err := s.db.QueryRow(
		`SELECT created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&createdAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("get join date: %w", err)
	}
	return createdAt, nil
}
