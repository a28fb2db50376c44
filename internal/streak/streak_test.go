package streak

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

func TestCalculateNoPriorActivity(t *testing.T) {
	got, reset := Calculate(nil, 0, now)
	if got != 1 || reset {
		t.Errorf("Calculate(nil, 0) = (%d, %v), want (1, false)", got, reset)
	}
}

func TestCalculateSameDay(t *testing.T) {
	earlier := time.Date(2025, 6, 15, 0, 5, 0, 0, time.Local)
	got, reset := Calculate(&earlier, 5, now)
	if got != 5 || reset {
		t.Errorf("same day = (%d, %v), want (5, false)", got, reset)
	}
}

func TestCalculateConsecutiveDay(t *testing.T) {
	yesterday := time.Date(2025, 6, 14, 23, 55, 0, 0, time.Local)
	got, reset := Calculate(&yesterday, 5, now)
	if got != 6 || reset {
		t.Errorf("next day = (%d, %v), want (6, false)", got, reset)
	}
}

func TestCalculateGapResets(t *testing.T) {
	threeDaysAgo := time.Date(2025, 6, 12, 9, 0, 0, 0, time.Local)
	got, reset := Calculate(&threeDaysAgo, 5, now)
	if got != 1 || !reset {
		t.Errorf("gap = (%d, %v), want (1, true)", got, reset)
	}
}

func TestCalculateMonthBoundary(t *testing.T) {
	lastOfMay := time.Date(2025, 5, 31, 20, 0, 0, 0, time.Local)
	firstOfJune := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)
	got, reset := Calculate(&lastOfMay, 9, firstOfJune)
	if got != 10 || reset {
		t.Errorf("month boundary = (%d, %v), want (10, false)", got, reset)
	}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{0, 0},
		{6, 0},
		{7, 5},
		{13, 5},
		{14, 10},
		{29, 10},
		{30, 20},
		{100, 20},
	}

	for _, tt := range tests {
		if got := Bonus(tt.streak); got != tt.want {
			t.Errorf("Bonus(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}
