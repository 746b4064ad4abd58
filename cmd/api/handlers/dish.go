package handlers

import (
	"errors"
	"net/http"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/repository"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/service"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DishHandler handles dish-related requests
type DishHandler struct {
	service *service.DishService
	log     *logger.Logger
}

// NewDishHandler creates a new dish handler
func NewDishHandler(service *service.DishService, log *logger.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		log:     log,
	}
}

// ListDishes lists a submenu's dishes
// GET /api/v1/menus/:menu_id/submenus/:submenu_id/dishes
func (h *DishHandler) ListDishes(c echo.Context) error {
	menuID, submenuID, err := submenuParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	dishes, err := h.service.GetAll(c.Request().Context(), menuID, submenuID)
	if err != nil {
		h.log.Error("failed to list dishes", "submenu_id", submenuID, "error", err)
		return internalError(c)
	}

	if dishes == nil {
		dishes = []models.DishResponse{}
	}
	return c.JSON(http.StatusOK, dishes)
}

// GetDish retrieves a dish
// GET /api/v1/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id
func (h *DishHandler) GetDish(c echo.Context) error {
	menuID, submenuID, dishID, err := dishParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	dish, err := h.service.Get(c.Request().Context(), menuID, submenuID, dishID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "dish")
	}
	if err != nil {
		h.log.Error("failed to get dish", "id", dishID, "error", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, dish)
}

// CreateDish creates a dish under a submenu
// POST /api/v1/menus/:menu_id/submenus/:submenu_id/dishes
func (h *DishHandler) CreateDish(c echo.Context) error {
	menuID, submenuID, err := submenuParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input models.DishInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	dish, err := h.service.Create(ctx, tasks, menuID, submenuID, input, uuid.Nil)
	if errors.Is(err, service.ErrInvalidPrice) || errors.Is(err, service.ErrInvalidDiscount) {
		return badRequest(c, err.Error())
	}
	if err != nil {
		h.log.Error("failed to create dish", "submenu_id", submenuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusCreated, dish.Response())
}

// UpdateDish updates a dish
// PATCH /api/v1/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id
func (h *DishHandler) UpdateDish(c echo.Context) error {
	menuID, submenuID, dishID, err := dishParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input models.DishInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	dish, err := h.service.Update(ctx, tasks, menuID, submenuID, dishID, input)
	if errors.Is(err, service.ErrInvalidPrice) || errors.Is(err, service.ErrInvalidDiscount) {
		return badRequest(c, err.Error())
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "dish")
	}
	if err != nil {
		h.log.Error("failed to update dish", "id", dishID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, dish.Response())
}

// DeleteDish deletes a dish
// DELETE /api/v1/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id
func (h *DishHandler) DeleteDish(c echo.Context) error {
	menuID, submenuID, dishID, err := dishParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	if err := h.service.Delete(ctx, tasks, menuID, submenuID, dishID); err != nil {
		h.log.Error("failed to delete dish", "id", dishID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func dishParams(c echo.Context) (menuID, submenuID, dishID uuid.UUID, err error) {
	if menuID, submenuID, err = submenuParams(c); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	if dishID, err = uuid.Parse(c.Param("dish_id")); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, errors.New("invalid dish id")
	}
	return menuID, submenuID, dishID, nil
}
