package entities

import "strconv"

// LevelTier is one row of the progression table.
type LevelTier struct {
	Level          int    // tier number, ascending with XPRequired
	Title          string // display title
	XPRequired     int    // XP threshold to reach the tier
	DiamondsReward int    // one-time reward granted when the tier is reached
}

// LevelInfo describes where a given XP amount sits in the progression table.
type LevelInfo struct {
	Level       int
	Title       string
	Progress    float64 // percent towards the next tier, 0..100
	CurrentXP   int
	NextLevelXP int  // threshold of the next tier, meaningless when IsMax
	IsMax       bool // XP is at or beyond the highest tier
}

// NextLevelLabel renders the next threshold or "MAX" for the top tier.
func (li LevelInfo) NextLevelLabel() string {
	if li.IsMax {
		return "MAX"
	}
	return strconv.Itoa(li.NextLevelXP)
}

// LevelUp is returned when an XP change crosses into a higher tier.
type LevelUp struct {
	LevelInfo
	Reward int // diamonds granted for reaching the tier
}
