package entities

import (
	"strconv"
	"strings"
)

// Known game rule names.
const (
	RuleXPPerCorrectAnswer      = "xpPerCorrectAnswer"
	RuleXPBonusAllCorrect       = "xpBonusAllCorrect"
	RuleDiamondsBonusAllCorrect = "diamondsBonusAllCorrect"
	RuleDefaultPages            = "defaultPages"
)

// GameRules maps rule names to their raw string values.
type GameRules map[string]string

// Value returns the raw rule value or "" when the rule is absent.
func (r GameRules) Value(name string) string {
	return r[name]
}

// Int parses a rule as an integer. Missing or malformed rules count as 0.
func (r GameRules) Int(name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Value(name)))
	if err != nil {
		return 0
	}
	return n
}

// DefaultPages returns the pages every player can access without purchases.
// Malformed entries are skipped; an empty rule means page 1.
func (r GameRules) DefaultPages() []int {
	raw := r.Value(RuleDefaultPages)
	if strings.TrimSpace(raw) == "" {
		raw = "1"
	}

	var pages []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		pages = append(pages, n)
	}
	return pages
}

// QuestionConfig toggles one question generator.
type QuestionConfig struct {
	ID      string
	Enabled bool
}

// GameConfig is the read-only configuration loaded once at startup.
type GameConfig struct {
	Rules      GameRules
	Questions  []QuestionConfig
	Tiers      []LevelTier
	StoreItems []StoreItem
	Challenges []Challenge
}
