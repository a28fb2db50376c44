package leveling

import "testing"

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{5, 100},
		{10, 100},
		{11, 150},
		{20, 150},
		{21, 200},
		{31, 250},
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestTotalXPForLevel(t *testing.T) {
	if got := TotalXPForLevel(0); got != 0 {
		t.Errorf("TotalXPForLevel(0) = %d, want 0", got)
	}
	if got := TotalXPForLevel(1); got != 100 {
		t.Errorf("TotalXPForLevel(1) = %d, want 100", got)
	}
	// 10 levels at 100, then one at 150.
	if got := TotalXPForLevel(11); got != 1150 {
		t.Errorf("TotalXPForLevel(11) = %d, want 1150", got)
	}
}

func TestLevelFromXPZeroMeansUncalibrated(t *testing.T) {
	if got := LevelFromXP(0); got != 0 {
		t.Errorf("LevelFromXP(0) = %d, want 0", got)
	}
	if got := LevelFromXP(99); got != 0 {
		t.Errorf("LevelFromXP(99) = %d, want 0", got)
	}
	if got := LevelFromXP(100); got != 1 {
		t.Errorf("LevelFromXP(100) = %d, want 1", got)
	}
}

// LevelFromXP must be the inverse floor of the cumulative curve: the
// returned level is affordable, the next one is not.
func TestLevelFromXPInverseFloor(t *testing.T) {
	for xp := 0; xp <= 5000; xp += 37 {
		level := LevelFromXP(xp)
		if TotalXPForLevel(level) > xp {
			t.Fatalf("xp=%d: TotalXPForLevel(%d) = %d exceeds balance",
				xp, level, TotalXPForLevel(level))
		}
		if TotalXPForLevel(level+1) <= xp {
			t.Fatalf("xp=%d: level %d+1 still affordable", xp, level)
		}
	}
}

func TestXPForQuestionBands(t *testing.T) {
	tests := []struct {
		difficulty int
		want       int
	}{
		{1, 5},
		{2, 7},
		{3, 7},
		{4, 10},
		{5, 10},
	}

	for _, tt := range tests {
		if got := XPForQuestion(tt.difficulty); got != tt.want {
			t.Errorf("XPForQuestion(%d) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestProgressToNextLevel(t *testing.T) {
	p := ProgressToNextLevel(150)
	if p.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1", p.CurrentLevel)
	}
	if p.CurrentLevelXP != 50 {
		t.Errorf("CurrentLevelXP = %d, want 50", p.CurrentLevelXP)
	}
	if p.NextLevelXP != 100 {
		t.Errorf("NextLevelXP = %d, want 100", p.NextLevelXP)
	}
	if p.Percent != 50 {
		t.Errorf("Percent = %v, want 50", p.Percent)
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Unranked"},
		{1, "Beginner"},
		{12, "Intermediate"},
		{80, "Legend"},
		{101, "Mythic"},
	}

	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
