package cache

import "fmt"

// Cache keys are composed from ancestor identifiers, so keys never
// collide across branches of the menu tree and every descendant of an
// entity shares that entity's key as a prefix. That prefix property is
// what makes ClearByMask sufficient for cascade invalidation.

// MenusKey is the collection key for all menus
func MenusKey() string {
	return "menus"
}

// MenuKey is the single-item key for a menu
func MenuKey(menuID string) string {
	return fmt.Sprintf("menu_%s", menuID)
}

// SubMenusKey is the collection key for a menu's submenus
func SubMenusKey(menuID string) string {
	return fmt.Sprintf("menu_%s_submenus", menuID)
}

// SubMenuKey is the single-item key for a submenu
func SubMenuKey(menuID, submenuID string) string {
	return fmt.Sprintf("menu_%s_submenu_%s", menuID, submenuID)
}

// DishesKey is the collection key for a submenu's dishes
func DishesKey(menuID, submenuID string) string {
	return fmt.Sprintf("menu_%s_submenu_%s_dishes", menuID, submenuID)
}

// DishKey is the single-item key for a dish
func DishKey(menuID, submenuID, dishID string) string {
	return fmt.Sprintf("menu_%s_submenu_%s_dish_%s", menuID, submenuID, dishID)
}
