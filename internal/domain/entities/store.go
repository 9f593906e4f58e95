package entities

// ItemType classifies store items by their effect.
type ItemType string

const (
	ItemTypeTheme ItemType = "THEME" // cosmetic theme, Value is the theme key
	ItemTypePage  ItemType = "PAGE"  // unlocks a mushaf page, Value is the page number
)

// StoreItem is a purchasable item from the store catalog.
type StoreItem struct {
	ID          string
	Name        string
	Description string
	Type        ItemType
	Price       int
	Value       string
}
