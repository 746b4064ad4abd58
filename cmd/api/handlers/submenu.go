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

// SubMenuHandler handles submenu-related requests
type SubMenuHandler struct {
	service *service.SubMenuService
	log     *logger.Logger
}

// NewSubMenuHandler creates a new submenu handler
func NewSubMenuHandler(service *service.SubMenuService, log *logger.Logger) *SubMenuHandler {
	return &SubMenuHandler{
		service: service,
		log:     log,
	}
}

// ListSubMenus lists a menu's submenus
// GET /api/v1/menus/:menu_id/submenus
func (h *SubMenuHandler) ListSubMenus(c echo.Context) error {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	submenus, err := h.service.GetAll(c.Request().Context(), menuID)
	if err != nil {
		h.log.Error("failed to list submenus", "menu_id", menuID, "error", err)
		return internalError(c)
	}

	if submenus == nil {
		submenus = []models.SubMenu{}
	}
	return c.JSON(http.StatusOK, submenus)
}

// GetSubMenu retrieves a submenu
// GET /api/v1/menus/:menu_id/submenus/:submenu_id
func (h *SubMenuHandler) GetSubMenu(c echo.Context) error {
	menuID, submenuID, err := submenuParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	submenu, err := h.service.Get(c.Request().Context(), menuID, submenuID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "submenu")
	}
	if err != nil {
		h.log.Error("failed to get submenu", "id", submenuID, "error", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, submenu)
}

// CreateSubMenu creates a submenu under a menu
// POST /api/v1/menus/:menu_id/submenus
func (h *SubMenuHandler) CreateSubMenu(c echo.Context) error {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	var input models.SubMenuInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	submenu, err := h.service.Create(ctx, tasks, menuID, input, uuid.Nil)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "menu")
	}
	if err != nil {
		h.log.Error("failed to create submenu", "menu_id", menuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusCreated, submenu)
}

// UpdateSubMenu updates a submenu
// PATCH /api/v1/menus/:menu_id/submenus/:submenu_id
func (h *SubMenuHandler) UpdateSubMenu(c echo.Context) error {
	menuID, submenuID, err := submenuParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input models.SubMenuInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	submenu, err := h.service.Update(ctx, tasks, menuID, submenuID, input)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "submenu")
	}
	if err != nil {
		h.log.Error("failed to update submenu", "id", submenuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, submenu)
}

// DeleteSubMenu deletes a submenu and its dishes
// DELETE /api/v1/menus/:menu_id/submenus/:submenu_id
func (h *SubMenuHandler) DeleteSubMenu(c echo.Context) error {
	menuID, submenuID, err := submenuParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	tasks := cache.NewTasks()

	if err := h.service.Delete(ctx, tasks, menuID, submenuID); err != nil {
		h.log.Error("failed to delete submenu", "id", submenuID, "error", err)
		return internalError(c)
	}

	if err := tasks.Flush(ctx); err != nil {
		h.log.Warn("cache invalidation incomplete", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func submenuParams(c echo.Context) (menuID, submenuID uuid.UUID, err error) {
	if menuID, err = uuid.Parse(c.Param("menu_id")); err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid menu id")
	}
	if submenuID, err = uuid.Parse(c.Param("submenu_id")); err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid submenu id")
	}
	return menuID, submenuID, nil
}
