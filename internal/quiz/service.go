package quiz

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
	"github.com/mayurhingaladiya/csboost-fyp/internal/progression"
)

type Service struct {
	store       *Store
	progression *progression.Service

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService wires the quiz flows. The random source drives bonus-question
// selection; tests inject a seeded one.
func NewService(store *Store, prog *progression.Service, rng *rand.Rand) *Service {
	return &Service{store: store, progression: prog, rng: rng}
}

func (s *Service) Topics() ([]models.Topic, error) {
	return s.store.ListTopics()
}

func (s *Service) Subtopics(topicID int64) ([]models.Subtopic, error) {
	return s.store.ListSubtopics(topicID)
}

func (s *Service) Progress(userID uuid.UUID) ([]models.QuizProgress, error) {
	return s.store.ListProgress(userID)
}

// StartQuiz loads a subtopic's questions and rolls which of them carry the
// timed bonus. The client renders the countdown from the returned decay
// parameters; the server re-scores against the same indexes on completion.
func (s *Service) StartQuiz(subtopicID int64) (*models.StartQuizResponse, error) {
	questions, err := s.store.QuestionsBySubtopic(subtopicID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	bonusIndexes := PickBonusIndexes(s.rng, len(questions))
	s.mu.Unlock()

	return &models.StartQuizResponse{
		Questions:        questions,
		BonusIndexes:     bonusIndexes,
		BonusCountdown:   BonusCountdownSeconds,
		BonusStartXP:     BonusStartXP,
		BonusDecayPerSec: BonusDecayPerSec,
	}, nil
}

// StartMockTest deals a full mock test: an easy warm-up sample plus a
// timed pool ramping through the difficulty tiers. Mock tests grant no XP
// or boost points; the score is the client's to display.
func (s *Service) StartMockTest() (*models.MockTestResponse, error) {
	bank, err := s.store.AllQuestions()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sample, pool, err := BuildMockTestPool(s.rng, bank, MockTestQuestionCount)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &models.MockTestResponse{
		Sample:             sample,
		Questions:          pool,
		SecondsPerQuestion: MockTestSecondsPerQuestion,
	}, nil
}

// RollBonus decides whether the next question becomes an opportunistic
// bonus question. The client calls this mid-quiz when the answer streak
// moves; the roll only ever succeeds at streak 2 or higher.
func (s *Service) RollBonus(answerStreak int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShouldAddBonus(s.rng, answerStreak)
}

// DailyQuestions samples the daily quiz question set, filtered by the
// user's education level and exam specification.
func (s *Service) DailyQuestions(userID uuid.UUID) ([]models.Question, error) {
	level, specification, err := s.store.UserFilters(userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetFilteredQuestions(models.DailyQuizQuestionCount, level, specification)
}

// CompleteQuiz scores a finished subtopic attempt, overwrites the user's
// progress row, and appends one subtopic_quiz reward event. Boost points
// only pay out on the first-ever attempt at the subtopic, so the
// first-attempt check runs before the progress upsert creates the row.
func (s *Service) CompleteQuiz(userID uuid.UUID, req models.CompleteQuizRequest) (*models.CompleteQuizResponse, error) {
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("complete quiz: no answers submitted")
	}

	attempted, err := s.store.HasAttempted(userID, req.SubtopicID)
	if err != nil {
		return nil, err
	}
	firstAttempt := !attempted

	score := ScoreAttempt(req.Answers, req.BonusIndexes)
	boost := FirstAttemptBoost(firstAttempt, score.Accuracy, score.MaxAnswerStreak)

	err = s.store.UpsertProgress(models.QuizProgress{
		UserID:         userID,
		SubtopicID:     req.SubtopicID,
		TotalQuestions: len(req.Answers),
		CorrectAnswers: score.CorrectAnswers,
		Progress:       score.Accuracy,
	})
	if err != nil {
		return nil, err
	}

	levels, err := s.progression.GrantReward(userID, models.SourceSubtopicQuiz, score.XP, boost, models.RewardMetadata{
		SubtopicID:   &req.SubtopicID,
		Accuracy:     &score.Accuracy,
		FirstAttempt: &firstAttempt,
	})
	if err != nil {
		return nil, fmt.Errorf("record quiz reward: %w", err)
	}

	return &models.CompleteQuizResponse{
		XPAwarded:          score.XP,
		BoostPointsAwarded: boost,
		Accuracy:           score.Accuracy,
		MaxAnswerStreak:    score.MaxAnswerStreak,
		FirstAttempt:       firstAttempt,
		LevelsGained:       levels,
	}, nil
}
