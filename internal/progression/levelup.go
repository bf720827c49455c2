package progression

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/kvstore"
	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// LevelUpKey is the key-value entry holding the pending level-up queue.
const LevelUpKey = "levelUpPending"

// rewardRecorder is the slice of the Ledger the notifier needs; it lets the
// notifier be exercised in tests without a database.
type rewardRecorder interface {
	RecordReward(userID uuid.UUID, date string, source models.RewardSource, xp, boostPoints int, meta models.RewardMetadata) error
}

// Notifier manages the queue of level crossings a user has earned but not
// yet been congratulated for. The queue is persisted through the key-value
// store immediately on enqueue, so a crash between the XP grant and the
// celebration loses nothing.
type Notifier struct {
	kv     kvstore.Store
	ledger rewardRecorder

	// The rand source is shared process-wide and is not safe for
	// concurrent use; every roll takes the lock.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewNotifier(kv kvstore.Store, ledger rewardRecorder, rng *rand.Rand) *Notifier {
	return &Notifier{kv: kv, ledger: ledger, rng: rng}
}

// Enqueue records every level crossed by an XP grant that moved the user
// from prevLevel to newLevel: the integers in (prevLevel, newLevel], in
// ascending order, appended after any levels already waiting. Returns the
// number of levels enqueued. A failed persist is logged and swallowed — the
// celebration is lost, the underlying XP grant is not.
func (n *Notifier) Enqueue(userID uuid.UUID, prevLevel, newLevel int) int {
	if newLevel <= prevLevel {
		return 0
	}

	pending, err := n.load(userID)
	if err != nil {
		log.Printf("[progression] failed to load pending level-ups for user %s: %v", userID, err)
		pending = models.PendingLevelUps{}
	}

	count := 0
	for lvl := prevLevel + 1; lvl <= newLevel; lvl++ {
		pending.Levels = append(pending.Levels, lvl)
		count++
	}

	if err := n.save(userID, pending); err != nil {
		log.Printf("[progression] failed to persist pending level-ups for user %s: %v", userID, err)
		return 0
	}
	return count
}

// PopNext pops the first queued level, records the level-up reward (2–5
// boost points) in the ledger, and persists the shortened queue — deleting
// the key entirely once drained. Returns nil when nothing is pending.
func (n *Notifier) PopNext(userID uuid.UUID) (*models.LevelUpNotice, error) {
	pending, err := n.load(userID)
	if err != nil {
		return nil, err
	}
	if len(pending.Levels) == 0 {
		return nil, nil
	}

	level := pending.Levels[0]

	n.mu.Lock()
	boost := 2 + n.rng.Intn(4) // [2,5]
	n.mu.Unlock()

	today := time.Now().UTC().Format(DayFormat)
	meta := models.RewardMetadata{NewLevel: &level}
	if err := n.ledger.RecordReward(userID, today, models.SourceLevelUp, 0, boost, meta); err != nil {
		return nil, fmt.Errorf("record level-up reward: %w", err)
	}

	pending.Levels = pending.Levels[1:]
	if len(pending.Levels) == 0 {
		if err := n.kv.Delete(userID, LevelUpKey); err != nil {
			log.Printf("[progression] failed to clear level-up queue for user %s: %v", userID, err)
		}
	} else if err := n.save(userID, pending); err != nil {
		log.Printf("[progression] failed to persist level-up queue for user %s: %v", userID, err)
	}

	return &models.LevelUpNotice{
		Level:       level,
		BoostPoints: boost,
		Remaining:   len(pending.Levels),
	}, nil
}

// Pending returns the queued levels without consuming them.
func (n *Notifier) Pending(userID uuid.UUID) ([]int, error) {
	pending, err := n.load(userID)
	if err != nil {
		return nil, err
	}
	if pending.Levels == nil {
		return []int{}, nil
	}
	return pending.Levels, nil
}

func (n *Notifier) load(userID uuid.UUID) (models.PendingLevelUps, error) {
	var pending models.PendingLevelUps
	raw, ok, err := n.kv.Get(userID, LevelUpKey)
	if err != nil || !ok {
		return pending, err
	}
	if err := json.Unmarshal(raw, &pending); err != nil {
		return models.PendingLevelUps{}, fmt.Errorf("decode pending level-ups: %w", err)
	}
	return pending, nil
}

func (n *Notifier) save(userID uuid.UUID, pending models.PendingLevelUps) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return n.kv.Set(userID, LevelUpKey, raw)
}
