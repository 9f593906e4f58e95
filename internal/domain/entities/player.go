package entities

import "slices"

// Player is a learner identified by a unique name.
type Player struct {
	Name       string   // unique key
	XP         int      // accumulated experience, never negative
	Diamonds   int      // in-game currency spent in the store
	OwnedItems []string // store item identifiers, no duplicates
}

// NewPlayer creates a player with default progression values.
func NewPlayer(name string) *Player {
	return &Player{
		Name:       name,
		OwnedItems: []string{},
	}
}

// Owns reports whether the player already holds the given store item.
func (p *Player) Owns(itemID string) bool {
	return slices.Contains(p.OwnedItems, itemID)
}

// AddItem records ownership of an item. It is a no-op for items already owned.
func (p *Player) AddItem(itemID string) {
	if p.Owns(itemID) {
		return
	}
	p.OwnedItems = append(p.OwnedItems, itemID)
}

// AddDiamonds credits currency to the player. Negative amounts are ignored.
func (p *Player) AddDiamonds(amount int) {
	if amount <= 0 {
		return
	}
	p.Diamonds += amount
}
