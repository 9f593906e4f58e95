package service

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// PlayerSaver persists a player's full state.
type PlayerSaver interface {
	Save(ctx context.Context, player *entities.Player) error
}

// PageRange is an inclusive run of consecutive pages.
type PageRange struct {
	Start int
	End   int
}

// PurchaseResult describes a completed purchase.
type PurchaseResult struct {
	Item  entities.StoreItem
	Pages []int // accessible pages after the purchase
	Saved bool  // false when the new state could not be persisted
}

// StoreService sells items for diamonds and derives what a player has unlocked.
type StoreService struct {
	items  []entities.StoreItem
	rules  entities.GameRules
	saver  PlayerSaver
	logger *zap.Logger
}

// NewStoreService creates a store over the configured catalog.
func NewStoreService(items []entities.StoreItem, rules entities.GameRules, saver PlayerSaver, logger *zap.Logger) *StoreService {
	return &StoreService{
		items:  items,
		rules:  rules,
		saver:  saver,
		logger: logger,
	}
}

// Items returns the catalog in configured order.
func (s *StoreService) Items() []entities.StoreItem {
	return slices.Clone(s.items)
}

// Item finds a catalog item by identifier.
func (s *StoreService) Item(id string) (entities.StoreItem, bool) {
	idx := slices.IndexFunc(s.items, func(it entities.StoreItem) bool { return it.ID == id })
	if idx < 0 {
		return entities.StoreItem{}, false
	}
	return s.items[idx], true
}

// Purchase debits the item price, grants the item and saves the player.
// Nothing changes when the item is unknown, too expensive or already owned.
func (s *StoreService) Purchase(ctx context.Context, player *entities.Player, itemID string) (*PurchaseResult, error) {
	item, ok := s.Item(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if player.Diamonds < item.Price {
		return nil, ErrInsufficientFunds
	}
	if player.Owns(item.ID) {
		return nil, ErrAlreadyOwned
	}

	player.Diamonds -= item.Price
	player.AddItem(item.ID)

	res := &PurchaseResult{
		Item:  item,
		Pages: s.AccessiblePages(player),
		Saved: true,
	}

	if err := s.saver.Save(ctx, player); err != nil {
		s.logger.Error("failed to save purchase",
			zap.String("player", player.Name),
			zap.String("item", item.ID),
			zap.Error(err),
		)
		res.Saved = false
	}

	return res, nil
}

// AccessiblePages returns the default pages plus every owned PAGE item, sorted.
func (s *StoreService) AccessiblePages(player *entities.Player) []int {
	pages := s.rules.DefaultPages()

	for _, id := range player.OwnedItems {
		item, ok := s.Item(id)
		if !ok || item.Type != entities.ItemTypePage {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(item.Value))
		if err != nil || n <= 0 {
			continue
		}
		pages = append(pages, n)
	}

	slices.Sort(pages)
	return slices.Compact(pages)
}

// OwnsRange reports whether every page in [start, end] is accessible.
func (s *StoreService) OwnsRange(player *entities.Player, start, end int) bool {
	return ownsRange(s.AccessiblePages(player), start, end)
}

// ActiveTheme returns the first owned theme item.
func (s *StoreService) ActiveTheme(player *entities.Player) (entities.StoreItem, bool) {
	for _, id := range player.OwnedItems {
		if item, ok := s.Item(id); ok && item.Type == entities.ItemTypeTheme {
			return item, true
		}
	}
	return entities.StoreItem{}, false
}

func ownsRange(pages []int, start, end int) bool {
	for p := start; p <= end; p++ {
		if !slices.Contains(pages, p) {
			return false
		}
	}
	return true
}

// ConsecutiveRanges returns the maximal runs of consecutive pages that span
// at least two pages. Input order and duplicates do not matter.
func ConsecutiveRanges(pages []int) []PageRange {
	if len(pages) == 0 {
		return nil
	}

	sorted := slices.Clone(pages)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var ranges []PageRange
	start := sorted[0]
	prev := sorted[0]

	flush := func() {
		if prev > start {
			ranges = append(ranges, PageRange{Start: start, End: prev})
		}
	}

	for _, p := range sorted[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		flush()
		start, prev = p, p
	}
	flush()

	return ranges
}
