package service

import (
	"sort"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// fallbackLevel is used when the progression table is empty. Its progress stays 0.
var fallbackLevel = entities.LevelInfo{
	Level:       1,
	Title:       "لاعب جديد",
	NextLevelXP: 100,
}

// Progression resolves XP amounts against the level table.
type Progression struct {
	tiers []entities.LevelTier
}

// NewProgression copies the tiers and orders them by XP threshold.
func NewProgression(tiers []entities.LevelTier) *Progression {
	sorted := make([]entities.LevelTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].XPRequired < sorted[j].XPRequired
	})

	return &Progression{tiers: sorted}
}

// tierIndex returns the highest tier whose threshold xp reaches.
// XP below the first threshold resolves to the first tier; -1 means no tiers.
func (p *Progression) tierIndex(xp int) int {
	if len(p.tiers) == 0 {
		return -1
	}

	for i := len(p.tiers) - 1; i >= 0; i-- {
		if xp >= p.tiers[i].XPRequired {
			return i
		}
	}
	return 0
}

// LevelInfo describes the tier xp belongs to and the progress towards the next one.
func (p *Progression) LevelInfo(xp int) entities.LevelInfo {
	idx := p.tierIndex(xp)
	if idx < 0 {
		info := fallbackLevel
		info.CurrentXP = xp
		return info
	}

	cur := p.tiers[idx]
	info := entities.LevelInfo{
		Level:     cur.Level,
		Title:     cur.Title,
		CurrentXP: xp,
	}

	if idx == len(p.tiers)-1 {
		info.IsMax = true
		info.Progress = 100
		info.NextLevelXP = cur.XPRequired
		return info
	}

	next := p.tiers[idx+1]
	info.NextLevelXP = next.XPRequired

	span := next.XPRequired - cur.XPRequired
	if span <= 0 {
		info.Progress = 100
		return info
	}
	info.Progress = clampPercent(float64(xp-cur.XPRequired) / float64(span) * 100)

	return info
}

// CheckForLevelUp reports the new tier and its reward when going from oldXP
// to newXP moves the player into a higher tier.
func (p *Progression) CheckForLevelUp(oldXP, newXP int) (*entities.LevelUp, bool) {
	before := p.LevelInfo(oldXP)
	after := p.LevelInfo(newXP)
	if after.Level <= before.Level {
		return nil, false
	}

	lu := &entities.LevelUp{LevelInfo: after}
	if idx := p.tierIndex(newXP); idx >= 0 {
		lu.Reward = p.tiers[idx].DiamondsReward
	}

	return lu, true
}

// ApplyXP adds amount to the player's XP and pays the level-up reward if a new
// tier was reached.
func (p *Progression) ApplyXP(player *entities.Player, amount int) *entities.LevelUp {
	if amount <= 0 {
		return nil
	}

	oldXP := player.XP
	player.XP += amount

	lu, ok := p.CheckForLevelUp(oldXP, player.XP)
	if !ok {
		return nil
	}
	player.AddDiamonds(lu.Reward)

	return lu
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
