package models

import "github.com/google/uuid"

// Menu is the top level of the menu tree.
// Maps to: menus table
type Menu struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`

	// Derived counts returned by list/get queries
	SubmenusCount int `db:"submenus_count" json:"submenus_count"`
	DishesCount   int `db:"dishes_count" json:"dishes_count"`
}

// MenuInput is the request body for creating or updating a menu
type MenuInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
