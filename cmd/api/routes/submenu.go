package routes

import (
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/container"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterSubMenuRoutes registers all submenu-related routes
func RegisterSubMenuRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewSubMenuHandler(c.SubMenuService, c.Components.Logger)

	submenus := e.Group("/api/v1/menus/:menu_id/submenus")
	{
		submenus.GET("", h.ListSubMenus)                 // GET .../submenus
		submenus.POST("", h.CreateSubMenu)               // POST .../submenus
		submenus.GET("/:submenu_id", h.GetSubMenu)       // GET .../submenus/:submenu_id
		submenus.PATCH("/:submenu_id", h.UpdateSubMenu)  // PATCH .../submenus/:submenu_id
		submenus.DELETE("/:submenu_id", h.DeleteSubMenu) // DELETE .../submenus/:submenu_id
	}
}
