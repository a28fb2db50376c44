package session

import (
	"context"
	"fmt"
)

// PlacementSize is the number of questions in a placement run.
const PlacementSize = 10

// PlacementLevel maps a placement score to a starting calibration level.
// Thresholds assume a ten-question run.
func PlacementLevel(correct int) int {
	switch {
	case correct >= 9:
		return 5
	case correct >= 7:
		return 4
	case correct >= 5:
		return 3
	case correct >= 3:
		return 2
	default:
		return 1
	}
}

// StartPlacement builds a placement run: a shuffled cross-section of the
// bank, capped at PlacementSize.
func (s *Service) StartPlacement(ctx context.Context) (*Practice, error) {
	return s.Start(ctx, Options{Limit: PlacementSize})
}

// FinishPlacement writes the calibration result to the profile: the
// placed level plus the seed values for mastery and accuracy.
func (s *Service) FinishPlacement(ctx context.Context, correct, total int) (int, error) {
	level := PlacementLevel(correct)

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	if err := s.progress.WritePlacement(ctx, level, correct, total, accuracy); err != nil {
		return 0, fmt.Errorf("store placement: %w", err)
	}
	s.log.Info("placement complete", "level", level, "correct", correct, "total", total)
	return level, nil
}
