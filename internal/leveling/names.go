package leveling

// levelBand maps an inclusive level range to a display name.
type levelBand struct {
	min, max int
	name     string
}

var levelNames = []levelBand{
	{1, 5, "Beginner"},
	{6, 10, "Novice"},
	{11, 20, "Intermediate"},
	{21, 30, "Advanced"},
	{31, 40, "Expert"},
	{41, 50, "Master"},
	{51, 75, "Grandmaster"},
	{76, 100, "Legend"},
}

// LevelName returns the display name for a level. Level 0 has no band
// (placement not taken yet); levels past the named bands are Mythic.
func LevelName(level int) string {
	if level < 1 {
		return "Unranked"
	}
	for _, b := range levelNames {
		if level >= b.min && level <= b.max {
			return b.name
		}
	}
	return "Mythic"
}
