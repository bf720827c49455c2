package progression

import "github.com/mayurhingaladiya/csboost-fyp/internal/models"

// XPPerLevelStep is the increment of the per-level XP threshold: leaving
// level L costs L * XPPerLevelStep XP.
const XPPerLevelStep = 100

// ComputeLevel maps cumulative XP onto the level curve. Pure and total over
// all non-negative inputs; negative XP is treated as zero.
func ComputeLevel(cumulativeXP int) models.LevelInfo {
	if cumulativeXP < 0 {
		cumulativeXP = 0
	}

	level := 1
	threshold := level * XPPerLevelStep
	for cumulativeXP >= threshold {
		cumulativeXP -= threshold
		level++
		threshold = level * XPPerLevelStep
	}

	return models.LevelInfo{
		Level:     level,
		CurrentXP: cumulativeXP,
		XPNeeded:  threshold,
		Progress:  float64(cumulativeXP) / float64(threshold),
	}
}

// XPToReachLevel returns the cumulative XP needed to just reach a level:
// the sum of i * XPPerLevelStep for i in 1..level-1.
func XPToReachLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total += i * XPPerLevelStep
	}
	return total
}
