package service

import (
	"context"
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/repository"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/google/uuid"
)

type submenuRepository interface {
	ListByMenu(ctx context.Context, menuID uuid.UUID) ([]models.SubMenu, error)
	ListAll(ctx context.Context) ([]models.SubMenu, error)
	GetByID(ctx context.Context, menuID, id uuid.UUID) (*models.SubMenu, error)
	Create(ctx context.Context, submenu *models.SubMenu) error
	Update(ctx context.Context, submenu *models.SubMenu) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SubMenuService handles submenu operations with a read-through cache
type SubMenuService struct {
	repo  submenuRepository
	menus menuChecker
	cache entityCache
	log   *logger.Logger
}

// NewSubMenuService creates a new submenu service
func NewSubMenuService(repo submenuRepository, menus menuChecker, entityCache entityCache, log *logger.Logger) *SubMenuService {
	return &SubMenuService{
		repo:  repo,
		menus: menus,
		cache: entityCache,
		log:   log,
	}
}

// GetAll retrieves a menu's submenus
func (s *SubMenuService) GetAll(ctx context.Context, menuID uuid.UUID) ([]models.SubMenu, error) {
	key := cache.SubMenusKey(menuID.String())

	var cached []models.SubMenu
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	submenus, err := s.repo.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submenus: %w", err)
	}

	if err := s.cache.Set(ctx, key, submenus); err != nil {
		s.log.Warn("failed to cache submenus", "menu_id", menuID, "error", err)
	}

	return submenus, nil
}

// ListAll retrieves every submenu with parent references, bypassing the
// cache. Used by the sync engine to build the store snapshot.
func (s *SubMenuService) ListAll(ctx context.Context) ([]models.SubMenu, error) {
	return s.repo.ListAll(ctx)
}

// Get retrieves a submenu by id
func (s *SubMenuService) Get(ctx context.Context, menuID, id uuid.UUID) (*models.SubMenu, error) {
	key := cache.SubMenuKey(menuID.String(), id.String())

	var cached models.SubMenu
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	submenu, err := s.repo.GetByID(ctx, menuID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, submenu); err != nil {
		s.log.Warn("failed to cache submenu", "id", id, "error", err)
	}

	return submenu, nil
}

// Create creates a submenu under a menu. A zero id means "generate one".
func (s *SubMenuService) Create(ctx context.Context, tasks *cache.Tasks, menuID uuid.UUID, input models.SubMenuInput, id uuid.UUID) (*models.SubMenu, error) {
	exists, err := s.menus.Exists(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to check menu existence: %w", err)
	}
	if !exists {
		return nil, repository.ErrNotFound
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	submenu := &models.SubMenu{
		ID:          id,
		MenuID:      menuID,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.repo.Create(ctx, submenu); err != nil {
		return nil, err
	}

	menuKey := menuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx,
			cache.MenusKey(),
			cache.MenuKey(menuKey),
			cache.SubMenusKey(menuKey),
		)
	})

	s.log.Info("created submenu", "id", submenu.ID, "menu_id", menuID, "title", submenu.Title)
	return submenu, nil
}

// Update updates a submenu's title and description
func (s *SubMenuService) Update(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID, input models.SubMenuInput) (*models.SubMenu, error) {
	submenu := &models.SubMenu{
		ID:          id,
		MenuID:      menuID,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.repo.Update(ctx, submenu); err != nil {
		return nil, err
	}

	menuKey := menuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx,
			cache.MenusKey(),
			cache.MenuKey(menuKey),
			cache.SubMenusKey(menuKey),
			cache.SubMenuKey(menuKey, id.String()),
		)
	})

	s.log.Info("updated submenu", "id", id, "menu_id", menuID)
	return submenu, nil
}

// Delete deletes a submenu and, by cascade, its dishes. Descendant cache
// keys share the submenu's key as a prefix.
func (s *SubMenuService) Delete(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	menuKey := menuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx,
			cache.MenusKey(),
			cache.MenuKey(menuKey),
			cache.SubMenusKey(menuKey),
		)
	})
	tasks.Add(func(ctx context.Context) error {
		return s.cache.ClearByMask(ctx, cache.SubMenuKey(menuKey, id.String()))
	})

	s.log.Info("deleted submenu", "id", id, "menu_id", menuID)
	return nil
}
