package notes

import (
	"database/sql"
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

// Get returns the user's reading position within a subtopic's notes; nil
// when the notes have never been opened.
func (s *Store) Get(userID uuid.UUID, subtopicID int64) (*models.NotesProgress, error) {
	var p models.NotesProgress
	err := s.db.QueryRow(
		`SELECT user_id, subtopic_id, page, progress, attempted_at
		 FROM notesprogress WHERE user_id = $1 AND subtopic_id = $2`,
		userID, subtopicID,
	).Scan(&p.UserID, &p.SubtopicID, &p.Page, &p.Progress, &p.AttemptedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notes progress: %w", err)
	}
	return &p, nil
}

// Upsert overwrites the user's reading position for a subtopic.
func (s *Store) Upsert(p models.NotesProgress) error {
	_, err := s.db.Exec(
		`INSERT INTO notesprogress (user_id, subtopic_id, page, progress, attempted_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id, subtopic_id) DO UPDATE SET
		    page = EXCLUDED.page,
		    progress = EXCLUDED.progress,
		    attempted_at = NOW()`,
		p.UserID, p.SubtopicID, p.Page, p.Progress,
	)
	if err != nil {
		return fmt.Errorf("upsert notes progress: %w", err)
	}
	return nil
}

// List returns the user's reading positions across all subtopics.
func (s *Store) List(userID uuid.UUID) ([]models.NotesProgress, error) {
	rows, err := s.db.Query(
		`SELECT user_id, subtopic_id, page, progress, attempted_at
		 FROM notesprogress WHERE user_id = $1 ORDER BY attempted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes progress: %w", err)
	}
	defer rows.Close()

	progress := []models.NotesProgress{}
	for rows.Next() {
		var p models.NotesProgress
		if err := rows.Scan(&p.UserID, &p.SubtopicID, &p.Page, &p.Progress, &p.AttemptedAt); err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}
