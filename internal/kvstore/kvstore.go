// Package kvstore provides per-user key-value storage. The mobile client
// kept this state on the device; the backend keeps it in the user_kv table
// so it survives reinstalls and is visible to every session.
package kvstore

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store is the key-value collaborator. Values are opaque JSON blobs;
// callers own the encoding.
type Store interface {
	Get(userID uuid.UUID, key string) ([]byte, bool, error)
	Set(userID uuid.UUID, key string, value []byte) error
	Delete(userID uuid.UUID, key string) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(userID uuid.UUID, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(
		`SELECT value FROM user_kv WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(userID uuid.UUID, key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO user_kv (user_id, key, value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
		userID, key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(userID uuid.UUID, key string) error {
	_, err := s.db.Exec(
		`DELETE FROM user_kv WHERE user_id = $1 AND key = $2`,
		userID, key,
	)
	if err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Memory is an in-process Store used by tests. Safe for concurrent use,
// like the SQL-backed store it stands in for.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(userID uuid.UUID, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[userID.String()+"/"+key]
	return v, ok, nil
}

func (m *Memory) Set(userID uuid.UUID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID.String()+"/"+key] = value
	return nil
}

func (m *Memory) Delete(userID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID.String()+"/"+key)
	return nil
}
