package notes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
	"github.com/mayurhingaladiya/csboost-fyp/internal/progression"
)

// XPPerPage is the reward for reading a notes page for the first time.
const XPPerPage = 1

type Service struct {
	store       *Store
	progression *progression.Service
}

func NewService(store *Store, prog *progression.Service) *Service {
	return &Service{store: store, progression: prog}
}

func (s *Service) Progress(userID uuid.UUID) ([]models.NotesProgress, error) {
	return s.store.List(userID)
}

// AdvanceNotes records the user's new reading position and pays the page
// reward. The ledger is the idempotence record: a page index that already
// has a notes reward row for this subtopic pays nothing on re-reads, so
// flipping back and forth never farms XP.
func (s *Service) AdvanceNotes(userID uuid.UUID, req models.AdvanceNotesRequest) (*models.AdvanceNotesResponse, error) {
	err := s.store.Upsert(models.NotesProgress{
		UserID:     userID,
		SubtopicID: req.SubtopicID,
		Page:       req.Page,
		Progress:   req.Progress,
	})
	if err != nil {
		return nil, err
	}

	earned, err := s.progression.Ledger().EarnedPages(userID, req.SubtopicID)
	if err != nil {
		return nil, err
	}
	if earned[req.Page] {
		return &models.AdvanceNotesResponse{AlreadyRead: true}, nil
	}

	page := req.Page
	levels, err := s.progression.GrantReward(userID, models.SourceNotes, XPPerPage, 0, models.RewardMetadata{
		SubtopicID: &req.SubtopicID,
		PageIndex:  &page,
	})
	if err != nil {
		return nil, fmt.Errorf("record notes reward: %w", err)
	}

	return &models.AdvanceNotesResponse{
		XPAwarded:    XPPerPage,
		LevelsGained: levels,
	}, nil
}
