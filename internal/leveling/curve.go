// Package leveling computes experience rewards and the level curve.
//
// Total XP is the ground truth: a learner's level is always derived from
// total XP via LevelFromXP, never stored, so the two can't drift apart.
package leveling

// baseLevelCost is the XP needed to advance into level 1.
const baseLevelCost = 100

// tierStep is the extra XP added to the per-level cost every 10 levels.
const tierStep = 50

// XPForLevel returns the XP cost to advance from level-1 into level.
// The cost starts at 100 and grows by 50 every 10 levels.
func XPForLevel(level int) int {
	if level < 1 {
		return 0
	}
	tier := (level - 1) / 10
	return baseLevelCost + tier*tierStep
}

// TotalXPForLevel returns the cumulative XP required to have fully
// reached level.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i <= level; i++ {
		total += XPForLevel(i)
	}
	return total
}

// LevelFromXP returns the largest level whose cumulative cost fits within
// totalXP. A balance below the level-1 cost yields level 0, which doubles
// as the "uncalibrated" marker used elsewhere.
func LevelFromXP(totalXP int) int {
	level := 0
	spent := 0
	for spent+XPForLevel(level+1) <= totalXP {
		level++
		spent += XPForLevel(level)
	}
	return level
}

// XPForQuestion returns the reward for a correct answer by authored
// difficulty band: easy (1) 5 XP, medium (2-3) 7 XP, hard (4-5) 10 XP.
// The band is the integer authoring difficulty, not the continuously
// adapted value.
func XPForQuestion(difficulty int) int {
	switch {
	case difficulty <= 1:
		return 5
	case difficulty <= 3:
		return 7
	default:
		return 10
	}
}

// Progress describes how far a learner is through their current level.
type Progress struct {
	CurrentLevel   int
	CurrentLevelXP int     // XP earned within the current level
	NextLevelXP    int     // XP cost of the next level
	Percent        float64 // CurrentLevelXP / NextLevelXP * 100
}

// ProgressToNextLevel derives level progress from a total XP balance.
func ProgressToNextLevel(totalXP int) Progress {
	level := LevelFromXP(totalXP)
	inLevel := totalXP - TotalXPForLevel(level)
	next := XPForLevel(level + 1)

	return Progress{
		CurrentLevel:   level,
		CurrentLevelXP: inLevel,
		NextLevelXP:    next,
		Percent:        float64(inLevel) / float64(next) * 100,
	}
}
