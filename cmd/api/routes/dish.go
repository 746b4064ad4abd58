package routes

import (
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/container"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterDishRoutes registers all dish-related routes
func RegisterDishRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewDishHandler(c.DishService, c.Components.Logger)

	dishes := e.Group("/api/v1/menus/:menu_id/submenus/:submenu_id/dishes")
	{
		dishes.GET("", h.ListDishes)               // GET .../dishes
		dishes.POST("", h.CreateDish)              // POST .../dishes
		dishes.GET("/:dish_id", h.GetDish)         // GET .../dishes/:dish_id
		dishes.PATCH("/:dish_id", h.UpdateDish)    // PATCH .../dishes/:dish_id
		dishes.DELETE("/:dish_id", h.DeleteDish)   // DELETE .../dishes/:dish_id
	}
}
