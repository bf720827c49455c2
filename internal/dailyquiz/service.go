package dailyquiz

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
	"github.com/mayurhingaladiya/csboost-fyp/internal/progression"
)

// Daily quiz reward formula: full marks earn escalated XP plus the day's
// boost point; partial credit earns per-question XP and no boost point.
const (
	FullMarksXP        = 50
	XPPerCorrectAnswer = 10
)

// availabilityStore is the slice of the Store the service needs; tests
// exercise the lifecycle against an in-memory implementation.
type availabilityStore interface {
	JoinDate(userID uuid.UUID) (time.Time, error)
	ListDates(userID uuid.UUID) ([]string, error)
	InsertMissing(userID uuid.UUID, date string) error
	Get(userID uuid.UUID, date string) (*models.DailyQuiz, error)
	Upsert(userID uuid.UUID, date string) (*models.DailyQuiz, error)
	MarkCompleted(userID uuid.UUID, date string, streakPoints int) (bool, error)
}

type rewardGranter interface {
	GrantReward(userID uuid.UUID, source models.RewardSource, xp, boostPoints int, meta models.RewardMetadata) (int, error)
}

type Service struct {
	store       availabilityStore
	progression rewardGranter
}

func NewService(store availabilityStore, prog rewardGranter) *Service {
	return &Service{store: store, progression: prog}
}

// EnsureDailyQuizzes backfills a pending availability row for every calendar
// day from the user's join date through max(today, latest existing row) that
// has no row yet. Re-running is idempotent: each insert is insert-if-absent,
// and a partial failure just leaves a narrower gap for the next run.
func (s *Service) EnsureDailyQuizzes(userID uuid.UUID) error {
	joinDate, err := s.store.JoinDate(userID)
	if err != nil {
		return err
	}
	existing, err := s.store.ListDates(userID)
	if err != nil {
		return err
	}

	missing := missingDates(joinDate, time.Now().UTC(), existing)
	for _, date := range missing {
		if err := s.store.InsertMissing(userID, date); err != nil {
			return fmt.Errorf("ensure daily quizzes: %w", err)
		}
	}
	if len(missing) > 0 {
		log.Printf("[dailyquiz] backfilled %d days for user %s", len(missing), userID)
	}
	return nil
}

// GetOrCreateDailyQuiz returns today's availability row, creating it when
// absent. The upsert on (user, date) makes two concurrent app opens
// converge on the same single row.
func (s *Service) GetOrCreateDailyQuiz(userID uuid.UUID) (*models.DailyQuiz, error) {
	today := time.Now().UTC().Format(progression.DayFormat)

	quiz, err := s.store.Get(userID, today)
	if err == nil && quiz != nil {
		return quiz, nil
	}
	// Fall through to create on both "absent" and fetch error; the upsert
	// is the authoritative attempt either way.
	return s.store.Upsert(userID, today)
}

// SubmitDailyQuiz finishes today's quiz. When completed, the day's row is
// marked done and one daily_quiz reward event is appended. Abandoning the
// quiz (completed=false) changes nothing: the day stays pending and may be
// retried — or silently break the streak at midnight.
//
// The completion flag and the reward row are separate writes with no
// transaction; a failure between them can leave a completed day without its
// reward. Accepted window, surfaced to the caller rather than rolled back.
func (s *Service) SubmitDailyQuiz(userID uuid.UUID, correctAnswers int, completed bool) (*models.SubmitDailyQuizResponse, error) {
	if !completed {
		return &models.SubmitDailyQuizResponse{}, nil
	}
	if correctAnswers < 0 {
		correctAnswers = 0
	}
	if correctAnswers > models.DailyQuizQuestionCount {
		correctAnswers = models.DailyQuizQuestionCount
	}

	today := time.Now().UTC().Format(progression.DayFormat)

	// Today's row may not exist yet: a submit without a prior fetch, or a
	// quiz finished just after midnight when only yesterday was backfilled.
	// Create it so completion has a row to mark.
	if _, err := s.store.Upsert(userID, today); err != nil {
		return nil, err
	}

	xp, boost := dailyReward(correctAnswers)

	marked, err := s.store.MarkCompleted(userID, today, boost)
	if err != nil {
		return nil, err
	}
	if !marked {
		// Completed is terminal for the day; a replayed submit grants
		// nothing. MarkCompleted only succeeds for one caller per day.
		return &models.SubmitDailyQuizResponse{}, nil
	}

	levels, err := s.progression.GrantReward(userID, models.SourceDailyQuiz, xp, boost, models.RewardMetadata{})
	if err != nil {
		return nil, fmt.Errorf("record daily quiz reward: %w", err)
	}

	return &models.SubmitDailyQuizResponse{
		XPAwarded:          xp,
		BoostPointsAwarded: boost,
		FullMarks:          correctAnswers == models.DailyQuizQuestionCount,
		LevelsGained:       levels,
	}, nil
}

// dailyReward maps a completed daily quiz score onto (xp, boost points).
func dailyReward(correctAnswers int) (int, int) {
	if correctAnswers == models.DailyQuizQuestionCount {
		return FullMarksXP, 1
	}
	return correctAnswers * XPPerCorrectAnswer, 0
}

// missingDates lists the days from joinDate through max(today, latest
// existing date) that have no availability row, in ascending order.
func missingDates(joinDate, today time.Time, existing []string) []string {
	have := make(map[string]bool, len(existing))
	end := dateOnly(today)
	for _, d := range existing {
		have[d] = true
		if t, err := time.Parse(progression.DayFormat, d); err == nil && t.After(end) {
			end = t
		}
	}

	var missing []string
	for day := dateOnly(joinDate); !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(progression.DayFormat)
		if !have[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
