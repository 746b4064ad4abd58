package models

import "github.com/google/uuid"

// SubMenu is the middle level of the menu tree, always owned by a Menu.
// Maps to: submenus table
type SubMenu struct {
	ID          uuid.UUID `db:"id" json:"id"`
	MenuID      uuid.UUID `db:"menu_id" json:"menu_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`

	// Derived count returned by list/get queries
	DishesCount int `db:"dishes_count" json:"dishes_count"`
}

// SubMenuInput is the request body for creating or updating a submenu
type SubMenuInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
