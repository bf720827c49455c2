package progression

import (
	"time"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

// DayFormat is the calendar-day key used throughout the ledger.
const DayFormat = "2006-01-02"

// DayEvent is the slice of a reward event the streak calculation needs.
type DayEvent struct {
	Date        string // YYYY-MM-DD
	BoostPoints int
}

// ComputeStreakData builds the dense day-by-day streak calendar from the
// user's join date through today. Only days that earned boost points count
// toward the streak: XP-only days (e.g. reading notes) leave the day
// uncompleted. Input order does not matter — events are bucketed by day.
func ComputeStreakData(joinDate, today time.Time, events []DayEvent) models.StreakData {
	boostByDay := make(map[string]int)
	for _, e := range events {
		if e.BoostPoints > 0 {
			boostByDay[e.Date] += e.BoostPoints
		}
	}

	start := truncateToDay(joinDate)
	end := truncateToDay(today)
	todayKey := end.Format(DayFormat)

	data := models.StreakData{
		StreakDays: make(map[string]bool),
	}

	streak := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(DayFormat)
		completed := boostByDay[key] > 0

		if completed {
			// The loop visits every day exactly once, so a completed day
			// either extends yesterday's chain or starts a new one.
			streak++
			data.StreakDays[key] = true
		} else {
			streak = 0
		}
		if streak > data.LongestStreak {
			data.LongestStreak = streak
		}

		data.StreakHistory = append(data.StreakHistory, models.StreakDay{
			DayOfWeek: day.Weekday().String()[:3],
			Date:      key,
			Completed: completed,
			IsToday:   key == todayKey,
		})
	}

	data.CurrentStreak = streak
	return data
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
