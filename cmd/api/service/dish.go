package service

import (
	"context"
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type dishRepository interface {
	ListBySubMenu(ctx context.Context, submenuID uuid.UUID) ([]models.Dish, error)
	ListAll(ctx context.Context) ([]models.Dish, error)
	GetByID(ctx context.Context, submenuID, id uuid.UUID) (*models.Dish, error)
	Create(ctx context.Context, dish *models.Dish) error
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DishService handles dish operations with a read-through cache.
// Responses carry the discount-adjusted price.
type DishService struct {
	repo  dishRepository
	cache entityCache
	log   *logger.Logger
}

// NewDishService creates a new dish service
func NewDishService(repo dishRepository, entityCache entityCache, log *logger.Logger) *DishService {
	return &DishService{
		repo:  repo,
		cache: entityCache,
		log:   log,
	}
}

// GetAll retrieves a submenu's dishes
func (s *DishService) GetAll(ctx context.Context, menuID, submenuID uuid.UUID) ([]models.DishResponse, error) {
	key := cache.DishesKey(menuID.String(), submenuID.String())

	var cached []models.DishResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	dishes, err := s.repo.ListBySubMenu(ctx, submenuID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	responses := make([]models.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		responses = append(responses, dish.Response())
	}

	if err := s.cache.Set(ctx, key, responses); err != nil {
		s.log.Warn("failed to cache dishes", "submenu_id", submenuID, "error", err)
	}

	return responses, nil
}

// ListAll retrieves every dish with parent references, bypassing the
// cache. Used by the sync engine to build the store snapshot.
func (s *DishService) ListAll(ctx context.Context) ([]models.Dish, error) {
	return s.repo.ListAll(ctx)
}

// Get retrieves a dish by id
func (s *DishService) Get(ctx context.Context, menuID, submenuID, id uuid.UUID) (*models.DishResponse, error) {
	key := cache.DishKey(menuID.String(), submenuID.String(), id.String())

	var cached models.DishResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	dish, err := s.repo.GetByID(ctx, submenuID, id)
	if err != nil {
		return nil, err
	}

	response := dish.Response()
	if err := s.cache.Set(ctx, key, response); err != nil {
		s.log.Warn("failed to cache dish", "id", id, "error", err)
	}

	return &response, nil
}

// Create creates a dish under a submenu. A zero id means "generate one".
func (s *DishService) Create(ctx context.Context, tasks *cache.Tasks, menuID, submenuID uuid.UUID, input models.DishInput, id uuid.UUID) (*models.Dish, error) {
	price, discount, err := parseDishAmounts(input)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	dish := &models.Dish{
		ID:          id,
		SubMenuID:   submenuID,
		MenuID:      menuID,
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Discount:    discount,
	}

	if err := s.repo.Create(ctx, dish); err != nil {
		return nil, err
	}

	s.queueParentInvalidation(tasks, menuID, submenuID)

	s.log.Info("created dish", "id", dish.ID, "submenu_id", submenuID, "title", dish.Title)
	return dish, nil
}

// Update updates a dish's fields
func (s *DishService) Update(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID, input models.DishInput) (*models.Dish, error) {
	price, discount, err := parseDishAmounts(input)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{
		ID:          id,
		SubMenuID:   submenuID,
		MenuID:      menuID,
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Discount:    discount,
	}

	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, err
	}

	menuKey, submenuKey := menuID.String(), submenuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx,
			cache.DishesKey(menuKey, submenuKey),
			cache.DishKey(menuKey, submenuKey, id.String()),
		)
	})

	s.log.Info("updated dish", "id", id, "submenu_id", submenuID)
	return dish, nil
}

// Delete deletes a dish
func (s *DishService) Delete(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	menuKey, submenuKey := menuID.String(), submenuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx, cache.DishKey(menuKey, submenuKey, id.String()))
	})
	s.queueParentInvalidation(tasks, menuID, submenuID)

	s.log.Info("deleted dish", "id", id, "submenu_id", submenuID)
	return nil
}

// queueParentInvalidation clears every ancestor key a dish mutation
// touches: both collection counts and the cached parent items.
func (s *DishService) queueParentInvalidation(tasks *cache.Tasks, menuID, submenuID uuid.UUID) {
	menuKey, submenuKey := menuID.String(), submenuID.String()
	tasks.Add(func(ctx context.Context) error {
		return s.cache.Clear(ctx,
			cache.MenusKey(),
			cache.MenuKey(menuKey),
			cache.SubMenusKey(menuKey),
			cache.SubMenuKey(menuKey, submenuKey),
			cache.DishesKey(menuKey, submenuKey),
		)
	})
}

func parseDishAmounts(input models.DishInput) (price, discount decimal.Decimal, err error) {
	price, err = decimal.NewFromString(input.Price)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, input.Price)
	}

	discount = decimal.Zero
	if input.Discount != "" {
		discount, err = decimal.NewFromString(input.Discount)
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDiscount, input.Discount)
		}
	}

	return price, models.ClampDiscount(discount), nil
}
