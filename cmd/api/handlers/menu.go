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

// MenuHandler handles menu-related requests
type MenuHandler struct {
	service *service.MenuService
	log     *logger.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, log *logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log,
	}
}

// ListMenus lists all menus
// GET /api/v1/menus
func (h *MenuHandler) ListMenus(c echo.Context) error {
	menus, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		h.log.Error("failed to list menus", "error", err)
		return internalError(c)
	}

	if menus == nil {
		menus = []models.Menu{}
	}
	return c.JSON(http.StatusOK, menus)
}

// GetMenu retrieves a menu
// GET /api/v1/menus/:menu_id
func (h *MenuHandler) GetMenu(c echo.Context) error {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	menu, err := h.service.Get(c.Request().Context(), menuID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "menu")
	}
	if err != nil {
		h.log.Error("failed to get menu", "id", menuID, "error", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, menu)
}

// CreateMenu creates a menu
// POST /api/v1/menus
func (h *MenuHandler) CreateMenu(c echo.Context) error {
	var input models.MenuInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	menu, err := h.service.Create(ctx, tasks, input, uuid.Nil)
	if err != nil {
		h.log.Error("failed to create menu", "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusCreated, menu)
}

// UpdateMenu updates a menu
// PATCH /api/v1/menus/:menu_id
func (h *MenuHandler) UpdateMenu(c echo.Context) error {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	var input models.MenuInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	menu, err := h.service.Update(ctx, tasks, menuID, input)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "menu")
	}
	if err != nil {
		h.log.Error("failed to update menu", "id", menuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, menu)
}

// DeleteMenu deletes a menu and its whole subtree
// DELETE /api/v1/menus/:menu_id
func (h *MenuHandler) DeleteMenu(c echo.Context) error {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	if err := h.service.Delete(ctx, tasks, menuID); err != nil {
		h.log.Error("failed to delete menu", "id", menuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
