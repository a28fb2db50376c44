package srs

// Difficulty bounds and the per-answer nudge. Difficulty is continuous:
// it drifts toward observed performance instead of jumping bands.
const (
	MinDifficulty  = 1.0
	MaxDifficulty  = 5.0
	DifficultyStep = 0.05
)

// AdjustDifficulty nudges a question's difficulty after an answer: down
// when answered correctly (easier than rated), up when missed. Malformed
// input is clamped into range rather than rejected.
func AdjustDifficulty(difficulty float64, correct bool) float64 {
	difficulty = clamp(difficulty)
	if correct {
		difficulty -= DifficultyStep
	} else {
		difficulty += DifficultyStep
	}
	return clamp(difficulty)
}

func clamp(d float64) float64 {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
