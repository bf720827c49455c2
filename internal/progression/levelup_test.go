package progression

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mayurhingaladiya/csboost-fyp/internal/kvstore"
	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

type recordedReward struct {
	source models.RewardSource
	xp     int
	boost  int
	meta   models.RewardMetadata
}

type fakeRecorder struct {
	mu      sync.Mutex
	rewards []recordedReward
}

func (f *fakeRecorder) RecordReward(userID uuid.UUID, date string, source models.RewardSource, xp, boostPoints int, meta models.RewardMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewards = append(f.rewards, recordedReward{source: source, xp: xp, boost: boostPoints, meta: meta})
	return nil
}

func newTestNotifier() (*Notifier, *fakeRecorder, kvstore.Store) {
	kv := kvstore.NewMemory()
	rec := &fakeRecorder{}
	return NewNotifier(kv, rec, rand.New(rand.NewSource(1))), rec, kv
}

func TestEnqueueMultiLevelJump(t *testing.T) {
	n, _, _ := newTestNotifier()
	userID := uuid.New()

	// Level 3 → 6 queues 4, 5, 6 in order.
	if got := n.Enqueue(userID, 3, 6); got != 3 {
		t.Fatalf("Enqueue(3, 6) = %d, want 3", got)
	}

	pending, err := n.Pending(userID)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 5, 6}
	if len(pending) != len(want) {
		t.Fatalf("pending = %v, want %v", pending, want)
	}
	for i := range want {
		if pending[i] != want[i] {
			t.Fatalf("pending = %v, want %v", pending, want)
		}
	}
}

func TestEnqueueNoGain(t *testing.T) {
	n, _, _ := newTestNotifier()
	userID := uuid.New()

	if got := n.Enqueue(userID, 5, 5); got != 0 {
		t.Errorf("Enqueue(5, 5) = %d, want 0", got)
	}
	if got := n.Enqueue(userID, 5, 4); got != 0 {
		t.Errorf("Enqueue(5, 4) = %d, want 0", got)
	}

	pending, _ := n.Pending(userID)
	if len(pending) != 0 {
		t.Errorf("pending = %v, want empty", pending)
	}
}

func TestEnqueueAppendsAfterExisting(t *testing.T) {
	n, _, _ := newTestNotifier()
	userID := uuid.New()

	n.Enqueue(userID, 1, 2)
	n.Enqueue(userID, 2, 3)

	pending, _ := n.Pending(userID)
	if len(pending) != 2 || pending[0] != 2 || pending[1] != 3 {
		t.Errorf("pending = %v, want [2 3]", pending)
	}
}

func TestPopNextDrainsInOrder(t *testing.T) {
	n, rec, kv := newTestNotifier()
	userID := uuid.New()
	n.Enqueue(userID, 3, 5)

	first, err := n.PopNext(userID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Level != 4 || first.Remaining != 1 {
		t.Errorf("first pop = level %d, remaining %d; want 4, 1", first.Level, first.Remaining)
	}
	if first.BoostPoints < 2 || first.BoostPoints > 5 {
		t.Errorf("boost = %d, want within [2,5]", first.BoostPoints)
	}

	second, err := n.PopNext(userID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Level != 5 || second.Remaining != 0 {
		t.Errorf("second pop = level %d, remaining %d; want 5, 0", second.Level, second.Remaining)
	}

	// Each pop appended one level_up row with the new level in metadata.
	if len(rec.rewards) != 2 {
		t.Fatalf("recorded %d rewards, want 2", len(rec.rewards))
	}
	for i, r := range rec.rewards {
		if r.source != models.SourceLevelUp || r.xp != 0 {
			t.Errorf("reward %d = source %s, xp %d; want level_up, 0", i, r.source, r.xp)
		}
		if r.meta.NewLevel == nil || *r.meta.NewLevel != 4+i {
			t.Errorf("reward %d missing new level %d in metadata", i, 4+i)
		}
	}

	// The queue key is removed once drained.
	if _, ok, _ := kv.Get(userID, LevelUpKey); ok {
		t.Error("level-up key still present after queue drained")
	}
}

func TestPopNextEmptyQueue(t *testing.T) {
	n, rec, _ := newTestNotifier()

	notice, err := n.PopNext(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if notice != nil {
		t.Errorf("PopNext on empty queue = %+v, want nil", notice)
	}
	if len(rec.rewards) != 0 {
		t.Errorf("recorded %d rewards on empty pop, want 0", len(rec.rewards))
	}
}

// Pops for different users can arrive on concurrent requests; the shared
// rand source must survive that. Run with -race.
func TestPopNextConcurrent(t *testing.T) {
	n, rec, _ := newTestNotifier()

	users := make([]uuid.UUID, 16)
	for i := range users {
		users[i] = uuid.New()
		n.Enqueue(users[i], 1, 2)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(users))
	for _, userID := range users {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			notice, err := n.PopNext(id)
			if err != nil {
				errs <- err
				return
			}
			if notice == nil || notice.Level != 2 {
				errs <- fmt.Errorf("pop returned %+v, want level 2", notice)
			}
		}(userID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent pop failed: %v", err)
	}

	if len(rec.rewards) != len(users) {
		t.Errorf("recorded %d rewards, want %d", len(rec.rewards), len(users))
	}
	for _, r := range rec.rewards {
		if r.boost < 2 || r.boost > 5 {
			t.Errorf("boost = %d, want within [2,5]", r.boost)
		}
	}
}

func TestPopNextBoostRange(t *testing.T) {
	n, rec, _ := newTestNotifier()
	userID := uuid.New()
	n.Enqueue(userID, 1, 41)

	for i := 0; i < 40; i++ {
		if _, err := n.PopNext(userID); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range rec.rewards {
		if r.boost < 2 || r.boost > 5 {
			t.Fatalf("boost = %d, want within [2,5]", r.boost)
		}
	}
}
