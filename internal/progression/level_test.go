package progression

import "testing"

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		xp            int
		wantLevel     int
		wantCurrentXP int
		wantXPNeeded  int
	}{
		{0, 1, 0, 100},
		{99, 1, 99, 100},
		{100, 2, 0, 200},
		{250, 2, 150, 200},
		{299, 2, 199, 200},
		{300, 3, 0, 300},
		{599, 3, 299, 300},
		{600, 4, 0, 400},
	}

	for _, tt := range tests {
		got := ComputeLevel(tt.xp)
		if got.Level != tt.wantLevel || got.CurrentXP != tt.wantCurrentXP || got.XPNeeded != tt.wantXPNeeded {
			t.Errorf("ComputeLevel(%d) = level %d, current %d, needed %d; want %d, %d, %d",
				tt.xp, got.Level, got.CurrentXP, got.XPNeeded, tt.wantLevel, tt.wantCurrentXP, tt.wantXPNeeded)
		}
	}
}

func TestComputeLevelNegativeXP(t *testing.T) {
	got := ComputeLevel(-50)
	if got.Level != 1 || got.CurrentXP != 0 {
		t.Errorf("ComputeLevel(-50) = level %d, current %d; want 1, 0", got.Level, got.CurrentXP)
	}
}

func TestComputeLevelMonotonic(t *testing.T) {
	prev := ComputeLevel(0).Level
	for xp := 1; xp <= 5000; xp++ {
		level := ComputeLevel(xp).Level
		if level < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		prev = level
	}
}

func TestComputeLevelProgress(t *testing.T) {
	got := ComputeLevel(150)
	if got.Progress != 0.25 {
		t.Errorf("ComputeLevel(150).Progress = %f, want 0.25", got.Progress)
	}
}

// Reaching a level's cumulative threshold should land exactly at that level
// with zero XP into it.
func TestXPToReachLevelRoundTrip(t *testing.T) {
	for level := 1; level <= 50; level++ {
		xp := XPToReachLevel(level)
		got := ComputeLevel(xp)
		if got.Level != level || got.CurrentXP != 0 {
			t.Errorf("ComputeLevel(XPToReachLevel(%d)) = level %d, current %d; want %d, 0",
				level, got.Level, got.CurrentXP, level)
		}

		// One XP short stays on the previous level.
		if level > 1 {
			short := ComputeLevel(xp - 1)
			if short.Level != level-1 {
				t.Errorf("ComputeLevel(%d) = level %d, want %d", xp-1, short.Level, level-1)
			}
		}
	}
}
