package quiz

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListTopics returns the full topic catalogue.
func (s *Store) ListTopics() ([]models.Topic, error) {
	rows, err := s.db.Query(`SELECT id, title FROM topics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ListSubtopics returns a topic's subtopics in catalogue order.
func (s *Store) ListSubtopics(topicID int64) ([]models.Subtopic, error) {
	rows, err := s.db.Query(
		`SELECT id, topic_id, title FROM subtopics WHERE topic_id = $1 ORDER BY id`,
		topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subtopics: %w", err)
	}
	defer rows.Close()

	subtopics := []models.Subtopic{}
	for rows.Next() {
		var st models.Subtopic
		if err := rows.Scan(&st.ID, &st.TopicID, &st.Title); err != nil {
			return nil, err
		}
		subtopics = append(subtopics, st)
	}
	return subtopics, rows.Err()
}

// QuestionsBySubtopic returns every question under a subtopic.
func (s *Store) QuestionsBySubtopic(subtopicID int64) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, subtopic_id, question, choices, correct, explanation, difficulty, level, specification
		 FROM questions WHERE subtopic_id = $1 ORDER BY id`,
		subtopicID,
	)
	if err != nil {
		return nil, fmt.Errorf("get subtopic questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// AllQuestions returns the entire question bank.
func (s *Store) AllQuestions() ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, subtopic_id, question, choices, correct, explanation, difficulty, level, specification
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("get all questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetFilteredQuestions samples random questions matching the user's study
// level and exam specification. Empty filters match everything.
func (s *Store) GetFilteredQuestions(limit int, level, specification string) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, subtopic_id, question, choices, correct, explanation, difficulty, level, specification
		 FROM questions
		 WHERE ($2 = '' OR level = $2)
		   AND ($3 = '' OR specification = $3)
		 ORDER BY RANDOM()
		 LIMIT $1`,
		limit, level, specification,
	)
	if err != nil {
		return nil, fmt.Errorf("get filtered questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var choices []byte
		err := rows.Scan(&q.ID, &q.SubtopicID, &q.Question, &choices, &q.Correct,
			&q.Explanation, &q.Difficulty, &q.Level, &q.Specification)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(choices, &q.Choices); err != nil {
			return nil, fmt.Errorf("decode question %d choices: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// HasAttempted reports whether the user has any recorded attempt at the
// subtopic. Drives the first-attempt boost policy.
func (s *Store) HasAttempted(userID uuid.UUID, subtopicID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM quizprogress WHERE user_id = $1 AND subtopic_id = $2)`,
		userID, subtopicID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check quiz attempt: %w", err)
	}
	return exists, nil
}

// UpsertProgress overwrites the user's latest result for the subtopic.
// Unlike the reward ledger this is not append-only: only the most recent
// attempt matters for the revision screens.
func (s *Store) UpsertProgress(p models.QuizProgress) error {
	_, err := s.db.Exec(
		`INSERT INTO quizprogress (user_id, subtopic_id, total_questions, correct_answers, progress, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id, subtopic_id) DO UPDATE SET
		    total_questions = EXCLUDED.total_questions,
		    correct_answers = EXCLUDED.correct_answers,
		    progress = EXCLUDED.progress,
		    attempted_at = NOW()`,
		p.UserID, p.SubtopicID, p.TotalQuestions, p.CorrectAnswers, p.Progress,
	)
	if err != nil {
		return fmt.Errorf("upsert quiz progress: %w", err)
	}
	return nil
}

// ListProgress returns the user's per-subtopic results.
func (s *Store) ListProgress(userID uuid.UUID) ([]models.QuizProgress, error) {
	rows, err := s.db.Query(
		`SELECT user_id, subtopic_id, total_questions, correct_answers, progress, attempted_at
		 FROM quizprogress WHERE user_id = $1 ORDER BY attempted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz progress: %w", err)
	}
	defer rows.Close()

	progress := []models.QuizProgress{}
	for rows.Next() {
		var p models.QuizProgress
		err := rows.Scan(&p.UserID, &p.SubtopicID, &p.TotalQuestions, &p.CorrectAnswers, &p.Progress, &p.AttemptedAt)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// UserFilters reads the study filters from the user's onboarding settings.
func (s *Store) UserFilters(userID uuid.UUID) (level, specification string, err error) {
	err = s.db.QueryRow(
		`SELECT education_level, exam_specification FROM users WHERE id = $1`,
		userID,
	).Scan(&level, &specification)
	if err != nil {
		return "", "", fmt.Errorf("get user filters: %w", err)
	}
	return level, specification, nil
}
