package progression

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStreakDataDenseCalendar(t *testing.T) {
	got := ComputeStreakData(day("2026-08-20"), day("2026-08-26"), nil)

	if len(got.StreakHistory) != 7 {
		t.Fatalf("history length = %d, want 7", len(got.StreakHistory))
	}
	if got.StreakHistory[0].Date != "2026-08-20" || got.StreakHistory[6].Date != "2026-08-26" {
		t.Errorf("history spans %s..%s, want 2026-08-20..2026-08-26",
			got.StreakHistory[0].Date, got.StreakHistory[6].Date)
	}
	if !got.StreakHistory[6].IsToday {
		t.Error("last day should be marked today")
	}
	for i, d := range got.StreakHistory[:6] {
		if d.IsToday {
			t.Errorf("day %d (%s) wrongly marked today", i, d.Date)
		}
	}
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("empty ledger gave streak %d/%d, want 0/0", got.CurrentStreak, got.LongestStreak)
	}
}

func TestComputeStreakDataGapResets(t *testing.T) {
	// Days 1-3 completed, day 4 missed, days 5-6 completed.
	events := []DayEvent{
		{Date: "2026-08-20", BoostPoints: 1},
		{Date: "2026-08-21", BoostPoints: 2},
		{Date: "2026-08-22", BoostPoints: 1},
		{Date: "2026-08-24", BoostPoints: 1},
		{Date: "2026-08-25", BoostPoints: 3},
	}

	got := ComputeStreakData(day("2026-08-20"), day("2026-08-25"), events)

	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
	if got.StreakDays["2026-08-23"] {
		t.Error("missed day marked completed")
	}
	if !got.StreakDays["2026-08-25"] {
		t.Error("completed day missing from StreakDays")
	}
}

func TestComputeStreakDataXPOnlyDaysDontCount(t *testing.T) {
	// A reward row with zero boost points (e.g. notes XP) leaves the day
	// uncompleted.
	events := []DayEvent{
		{Date: "2026-08-24", BoostPoints: 0},
		{Date: "2026-08-25", BoostPoints: 1},
	}

	got := ComputeStreakData(day("2026-08-24"), day("2026-08-25"), events)

	if got.StreakDays["2026-08-24"] {
		t.Error("zero-boost day marked completed")
	}
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
}

func TestComputeStreakDataOrderIndependent(t *testing.T) {
	forward := []DayEvent{
		{Date: "2026-08-20", BoostPoints: 1},
		{Date: "2026-08-21", BoostPoints: 1},
		{Date: "2026-08-22", BoostPoints: 1},
	}
	backward := []DayEvent{forward[2], forward[0], forward[1]}

	a := ComputeStreakData(day("2026-08-20"), day("2026-08-22"), forward)
	b := ComputeStreakData(day("2026-08-20"), day("2026-08-22"), backward)

	if a.CurrentStreak != b.CurrentStreak || a.LongestStreak != b.LongestStreak {
		t.Errorf("event order changed the result: %d/%d vs %d/%d",
			a.CurrentStreak, a.LongestStreak, b.CurrentStreak, b.LongestStreak)
	}
}

func TestComputeStreakDataMultipleEventsSameDay(t *testing.T) {
	// Two reward rows on the same day still count as one completed day.
	events := []DayEvent{
		{Date: "2026-08-25", BoostPoints: 1},
		{Date: "2026-08-25", BoostPoints: 2},
	}

	got := ComputeStreakData(day("2026-08-25"), day("2026-08-25"), events)

	if got.CurrentStreak != 1 || got.LongestStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", got.CurrentStreak, got.LongestStreak)
	}
	if len(got.StreakHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(got.StreakHistory))
	}
}

func TestComputeStreakDataIgnoresTimeOfDay(t *testing.T) {
	// A late-evening join date must still anchor the calendar at that day.
	join := time.Date(2026, 8, 24, 23, 45, 0, 0, time.UTC)
	today := time.Date(2026, 8, 25, 0, 10, 0, 0, time.UTC)

	got := ComputeStreakData(join, today, nil)
	if len(got.StreakHistory) != 2 {
		t.Errorf("history length = %d, want 2", len(got.StreakHistory))
	}
}
