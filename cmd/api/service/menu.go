package service

import (
	"context"
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/google/uuid"
)

type menuRepository interface {
	List(ctx context.Context) ([]models.Menu, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Menu, error)
	Create(ctx context.Context, menu *models.Menu) error
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MenuService handles menu operations with a read-through cache.
// Mutations queue their cache invalidations on the unit of work's Tasks;
// the caller drains them after the mutation is committed.
type MenuService struct {
	repo  menuRepository
	cache entityCache
	log   *logger.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(repo menuRepository, entityCache entityCache, log *logger.Logger) *MenuService {
	return &MenuService{
		repo:  repo,
		cache: entityCache,
		log:   log,
	}
}

// GetAll retrieves all menus
func (s *MenuService) GetAll(ctx context.Context) ([]models.Menu, error) {
	key := cache.MenusKey()

	var cached []models.Menu
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	menus, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	if err := s.cache.Set(ctx, key, menus); err != nil {
		s.log.Warn("failed to cache menus", "error", err)
	}

	return menus, nil
}

// ListAll retrieves all menus bypassing the cache. Used by the sync
// engine, which must diff against actual store state, not cached reads.
func (s *MenuService) ListAll(ctx context.Context) ([]models.Menu, error) {
	return s.repo.List(ctx)
}

// Get retrieves a menu by id
func (s *MenuService) Get(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	key := cache.MenuKey(id.String())

	var cached models.Menu
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, menu); err != nil {
		s.log.Warn("failed to cache menu", "id", id, "error", err)
	}

	return menu, nil
}

// Create creates a menu. A zero id means "generate one"; the sync engine
// supplies spreadsheet identifiers explicitly.
func (s *MenuService) Create(ctx context.Context, tasks *cache.Tasks, input models.MenuInput, id uuid.UUID) (*models.Menu, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}

	menu := &models.Menu{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, err
	}

	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx, cache.MenusKey())
	})

	s.log.Info("created menu", "id", menu.ID, "title", menu.Title)
	return menu, nil
}

// Update updates a menu's title and description
func (s *MenuService) Update(ctx context.Context, tasks *cache.Tasks, id uuid.UUID, input models.MenuInput) (*models.Menu, error) {
	menu := &models.Menu{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}

	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx, cache.MenusKey(), cache.MenuKey(id.String()))
	})

	s.log.Info("updated menu", "id", id)
	return menu, nil
}

// Delete deletes a menu and, by cascade, everything under it. All
// descendant cache keys share the menu's key as a prefix, so one mask
// clear covers the whole subtree.
func (s *MenuService) Delete(ctx context.Context, tasks *cache.Tasks, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx, cache.MenusKey())
	})
	tasks.Add(func(ctx context.Context) error {
		return s.cache.ClearByMask(ctx, cache.MenuKey(id.String()))
	})

	s.log.Info("deleted menu", "id", id)
	return nil
}
