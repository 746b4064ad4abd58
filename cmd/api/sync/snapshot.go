package sync

import (
	"sort"
	"strings"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Records are the common comparable representation of spreadsheet rows
// and database entities. Both sides normalize to the same shape —
// canonical string identifiers, fixed 2-decimal money strings — so the
// differ can rely on plain struct equality to decide "unchanged".

// MenuRecord is the normalized form of a menu
type MenuRecord struct {
	ID          string
	Title       string
	Description string
}

// SubMenuRecord is the normalized form of a submenu
type SubMenuRecord struct {
	ID          string
	Title       string
	Description string
	MenuID      string
}

// DishRecord is the normalized form of a dish. Price and Discount are
// fixed 2-decimal strings; Discount is a fraction in [0, 1].
type DishRecord struct {
	ID          string
	Title       string
	Description string
	Price       string
	Discount    string
	MenuID      string
	SubMenuID   string
}

// Snapshot holds the normalized records of all three kinds for one side
// of a sync pass (source-of-truth or store).
type Snapshot struct {
	Menus    map[string]MenuRecord
	SubMenus map[string]SubMenuRecord
	Dishes   map[string]DishRecord
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Menus:    make(map[string]MenuRecord),
		SubMenus: make(map[string]SubMenuRecord),
		Dishes:   make(map[string]DishRecord),
	}
}

// SnapshotFromStore normalizes current database state into a snapshot
func SnapshotFromStore(menus []models.Menu, submenus []models.SubMenu, dishes []models.Dish) *Snapshot {
	snap := NewSnapshot()

	for _, menu := range menus {
		id := menu.ID.String()
		snap.Menus[id] = MenuRecord{
			ID:          id,
			Title:       menu.Title,
			Description: menu.Description,
		}
	}

	for _, submenu := range submenus {
		id := submenu.ID.String()
		snap.SubMenus[id] = SubMenuRecord{
			ID:          id,
			Title:       submenu.Title,
			Description: submenu.Description,
			MenuID:      submenu.MenuID.String(),
		}
	}

	for _, dish := range dishes {
		id := dish.ID.String()
		snap.Dishes[id] = DishRecord{
			ID:          id,
			Title:       dish.Title,
			Description: dish.Description,
			Price:       moneyString(dish.Price),
			Discount:    moneyString(dish.Discount),
			MenuID:      dish.MenuID.String(),
			SubMenuID:   dish.SubMenuID.String(),
		}
	}

	return snap
}

// canonicalID brings an identifier cell to canonical form. UUIDs get the
// lowercase dashed representation; anything else is kept as-is after
// trimming, and left for the apply step to reject.
func canonicalID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed.String()
	}
	return trimmed
}

// moneyString renders a decimal as a fixed 2-decimal string
func moneyString(value decimal.Decimal) string {
	return value.Round(2).StringFixed(2)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
