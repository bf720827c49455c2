package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// Service exposes the progression engine: the reward ledger plus the level
// and streak aggregates derived from it on every read.
type Service struct {
	ledger   *Ledger
	notifier *Notifier
}

func NewService(ledger *Ledger, notifier *Notifier) *Service {
	return &Service{ledger: ledger, notifier: notifier}
}

func (s *Service) Ledger() *Ledger { return s.ledger }

func (s *Service) Notifier() *Notifier { return s.notifier }

// GetProgression recomputes the user's full progression state from the
// ledger: cumulative totals, level curve position, and streak calendar.
func (s *Service) GetProgression(userID uuid.UUID) (*models.ProgressionResponse, error) {
	totalXP, err := s.ledger.TotalXP(userID)
	if err != nil {
		return nil, err
	}
	totalBoost, err := s.ledger.TotalBoostPoints(userID)
	if err != nil {
		return nil, err
	}

	joinDate, err := s.ledger.JoinDate(userID)
	if err != nil {
		return nil, err
	}
	events, err := s.ledger.DayEvents(userID)
	if err != nil {
		return nil, err
	}

	return &models.ProgressionResponse{
		TotalXP:          totalXP,
		TotalBoostPoints: totalBoost,
		LevelInfo:        ComputeLevel(totalXP),
		Streak:           ComputeStreakData(joinDate, time.Now().UTC(), events),
	}, nil
}

// GrantReward is the single reward-earning path shared by the quiz, daily
// quiz, and notes flows: snapshot the level, append the ledger row, then
// enqueue a notice for every level the grant crossed. Returns the number of
// levels gained.
func (s *Service) GrantReward(userID uuid.UUID, source models.RewardSource, xp, boostPoints int, meta models.RewardMetadata) (int, error) {
	before, err := s.ledger.TotalXP(userID)
	if err != nil {
		return 0, fmt.Errorf("get xp before grant: %w", err)
	}

	today := time.Now().UTC().Format(DayFormat)
	if err := s.ledger.RecordReward(userID, today, source, xp, boostPoints, meta); err != nil {
		return 0, err
	}

	// Re-read rather than adding locally: the ledger is the source of truth
	// and a concurrent grant may have landed in between.
	after, err := s.ledger.TotalXP(userID)
	if err != nil {
		return 0, fmt.Errorf("get xp after grant: %w", err)
	}

	prevLevel := ComputeLevel(before).Level
	newLevel := ComputeLevel(after).Level
	return s.notifier.Enqueue(userID, prevLevel, newLevel), nil
}

// RewardHistory lists the user's ledger entries, newest first.
func (s *Service) RewardHistory(userID uuid.UUID) ([]models.RewardEvent, error) {
	return s.ledger.ListRewards(userID)
}

// NextLevelUp pops and returns the next pending level-up notice, or nil.
func (s *Service) NextLevelUp(userID uuid.UUID) (*models.LevelUpNotice, error) {
	return s.notifier.PopNext(userID)
}

// GetLeaderboard ranks users by summed boost points and marks the caller.
func (s *Service) GetLeaderboard(userID uuid.UUID, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.ledger.BoostLeaderboard(limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UserID == userID {
			entries[i].IsCurrentUser = true
		}
	}
	return &models.LeaderboardResponse{Entries: entries}, nil
}
