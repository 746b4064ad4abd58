package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dish is the leaf level of the menu tree, always owned by a SubMenu.
// Maps to: dishes table
type Dish struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	SubMenuID   uuid.UUID       `db:"submenu_id" json:"submenu_id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`

	// MenuID is resolved through the submenu join. It is not a column of
	// the dishes table but the sync engine and cache keys need it.
	MenuID uuid.UUID `db:"menu_id" json:"-"`
}

// EffectivePrice is the customer-facing price: discount applied, rounded
// to 2 decimal places.
func (d Dish) EffectivePrice() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(1).Sub(d.Discount)).Round(2)
}

// Response converts a dish to its API representation
func (d Dish) Response() DishResponse {
	return DishResponse{
		ID:          d.ID,
		SubMenuID:   d.SubMenuID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.EffectivePrice().StringFixed(2),
	}
}

// DishResponse is the API representation of a dish. Price is the
// discount-adjusted value as a fixed 2-decimal string.
type DishResponse struct {
	ID          uuid.UUID `json:"id"`
	SubMenuID   uuid.UUID `json:"submenu_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
}

// DishInput is the request body for creating or updating a dish.
// Price is required; Discount is an optional fraction in [0, 1].
type DishInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Discount    string `json:"discount,omitempty"`
}

// ClampDiscount limits a discount fraction to [0, 1]. Out-of-range values
// are clamped, not rejected.
func ClampDiscount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if d.GreaterThan(one) {
		return one
	}
	return d
}
