package service

import (
	"context"
	"testing"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/repository"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDishRepo struct {
	dishes map[uuid.UUID]models.Dish
}

func newFakeDishRepo() *fakeDishRepo {
	return &fakeDishRepo{dishes: make(map[uuid.UUID]models.Dish)}
}

func (f *fakeDishRepo) ListBySubMenu(ctx context.Context, submenuID uuid.UUID) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0)
	for _, dish := range f.dishes {
		if dish.SubMenuID == submenuID {
			dishes = append(dishes, dish)
		}
	}
	return dishes, nil
}

func (f *fakeDishRepo) ListAll(ctx context.Context) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0, len(f.dishes))
	for _, dish := range f.dishes {
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

func (f *fakeDishRepo) GetByID(ctx context.Context, submenuID, id uuid.UUID) (*models.Dish, error) {
	dish, found := f.dishes[id]
	if !found || dish.SubMenuID != submenuID {
		return nil, repository.ErrNotFound
	}
	return &dish, nil
}

func (f *fakeDishRepo) Create(ctx context.Context, dish *models.Dish) error {
	f.dishes[dish.ID] = *dish
	return nil
}

func (f *fakeDishRepo) Update(ctx context.Context, dish *models.Dish) error {
	if _, found := f.dishes[dish.ID]; !found {
		return repository.ErrNotFound
	}
	f.dishes[dish.ID] = *dish
	return nil
}

func (f *fakeDishRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.dishes, id)
	return nil
}

func TestDishService_Create_InvalidAmounts(t *testing.T) {
	svc := NewDishService(newFakeDishRepo(), newFakeCache(), testLogger())
	menuID, submenuID := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), cache.NewTasks(), menuID, submenuID,
		models.DishInput{Title: "Soup", Price: "abc"}, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(context.Background(), cache.NewTasks(), menuID, submenuID,
		models.DishInput{Title: "Soup", Price: "10", Discount: "oops"}, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = svc.Create(context.Background(), cache.NewTasks(), menuID, submenuID,
		models.DishInput{Title: "Soup"}, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidPrice, "price is required")
}

func TestDishService_Create_ClampsDiscount(t *testing.T) {
	repo := newFakeDishRepo()
	svc := NewDishService(repo, newFakeCache(), testLogger())

	dish, err := svc.Create(context.Background(), cache.NewTasks(), uuid.New(), uuid.New(),
		models.DishInput{Title: "Soup", Price: "10", Discount: "1.5"}, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, "1", dish.Discount.String())
	assert.Equal(t, "0.00", dish.EffectivePrice().StringFixed(2))
}

func TestDishService_Create_InvalidatesAncestors(t *testing.T) {
	cached := newFakeCache()
	svc := NewDishService(newFakeDishRepo(), cached, testLogger())
	menuID, submenuID := uuid.New(), uuid.New()

	tasks := cache.NewTasks()
	_, err := svc.Create(context.Background(), tasks, menuID, submenuID,
		models.DishInput{Title: "Soup", Price: "10"}, uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, tasks.Flush(context.Background()))

	menuKey, submenuKey := menuID.String(), submenuID.String()
	assert.Equal(t, []string{
		"menus",
		"menu_" + menuKey,
		"menu_" + menuKey + "_submenus",
		"menu_" + menuKey + "_submenu_" + submenuKey,
		"menu_" + menuKey + "_submenu_" + submenuKey + "_dishes",
	}, cached.cleared)
}

func TestDishService_Update_InvalidatesOwnKeysOnly(t *testing.T) {
	repo := newFakeDishRepo()
	cached := newFakeCache()
	svc := NewDishService(repo, cached, testLogger())

	menuID, submenuID, id := uuid.New(), uuid.New(), uuid.New()
	repo.dishes[id] = models.Dish{ID: id, SubMenuID: submenuID, MenuID: menuID}

	tasks := cache.NewTasks()
	_, err := svc.Update(context.Background(), tasks, menuID, submenuID, id,
		models.DishInput{Title: "Soup", Price: "11"}, // no discount change
	)
	require.NoError(t, err)
	require.NoError(t, tasks.Flush(context.Background()))

	menuKey, submenuKey := menuID.String(), submenuID.String()
	assert.Equal(t, []string{
		"menu_" + menuKey + "_submenu_" + submenuKey + "_dishes",
		"menu_" + menuKey + "_submenu_" + submenuKey + "_dish_" + id.String(),
	}, cached.cleared)
}

func TestDishService_Get_ReturnsEffectivePrice(t *testing.T) {
	repo := newFakeDishRepo()
	svc := NewDishService(repo, newFakeCache(), testLogger())

	menuID, submenuID := uuid.New(), uuid.New()
	created, err := svc.Create(context.Background(), cache.NewTasks(), menuID, submenuID,
		models.DishInput{Title: "Soup", Price: "10.00", Discount: "0.1"}, uuid.Nil)
	require.NoError(t, err)

	response, err := svc.Get(context.Background(), menuID, submenuID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "9.00", response.Price)
}

func TestDishService_GetAll_ReadThrough(t *testing.T) {
	repo := newFakeDishRepo()
	svc := NewDishService(repo, newFakeCache(), testLogger())

	menuID, submenuID := uuid.New(), uuid.New()
	_, err := svc.Create(context.Background(), cache.NewTasks(), menuID, submenuID,
		models.DishInput{Title: "Soup", Price: "10"}, uuid.Nil)
	require.NoError(t, err)

	first, err := svc.GetAll(context.Background(), menuID, submenuID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// repo emptied; cached list still served
	repo.dishes = map[uuid.UUID]models.Dish{}
	second, err := svc.GetAll(context.Background(), menuID, submenuID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
