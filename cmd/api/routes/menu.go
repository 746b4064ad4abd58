package routes

import (
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/container"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterMenuRoutes registers all menu-related routes
func RegisterMenuRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewMenuHandler(c.MenuService, c.Components.Logger)

	menus := e.Group("/api/v1/menus")
	{
		menus.GET("", h.ListMenus)              // GET /api/v1/menus
		menus.POST("", h.CreateMenu)            // POST /api/v1/menus
		menus.GET("/:menu_id", h.GetMenu)       // GET /api/v1/menus/:menu_id
		menus.PATCH("/:menu_id", h.UpdateMenu)  // PATCH /api/v1/menus/:menu_id
		menus.DELETE("/:menu_id", h.DeleteMenu) // DELETE /api/v1/menus/:menu_id
	}
}
