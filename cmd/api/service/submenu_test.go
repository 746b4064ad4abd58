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

type fakeSubMenuRepo struct {
	submenus map[uuid.UUID]models.SubMenu
}

func newFakeSubMenuRepo() *fakeSubMenuRepo {
	return &fakeSubMenuRepo{submenus: make(map[uuid.UUID]models.SubMenu)}
}

func (f *fakeSubMenuRepo) ListByMenu(ctx context.Context, menuID uuid.UUID) ([]models.SubMenu, error) {
	submenus := make([]models.SubMenu, 0)
	for _, submenu := range f.submenus {
		if submenu.MenuID == menuID {
			submenus = append(submenus, submenu)
		}
	}
	return submenus, nil
}

func (f *fakeSubMenuRepo) ListAll(ctx context.Context) ([]models.SubMenu, error) {
	submenus := make([]models.SubMenu, 0, len(f.submenus))
	for _, submenu := range f.submenus {
		submenus = append(submenus, submenu)
	}
	return submenus, nil
}

func (f *fakeSubMenuRepo) GetByID(ctx context.Context, menuID, id uuid.UUID) (*models.SubMenu, error) {
	submenu, found := f.submenus[id]
	if !found || submenu.MenuID != menuID {
		return nil, repository.ErrNotFound
	}
	return &submenu, nil
}

func (f *fakeSubMenuRepo) Create(ctx context.Context, submenu *models.SubMenu) error {
	f.submenus[submenu.ID] = *submenu
	return nil
}

func (f *fakeSubMenuRepo) Update(ctx context.Context, submenu *models.SubMenu) error {
	if _, found := f.submenus[submenu.ID]; !found {
		return repository.ErrNotFound
	}
	f.submenus[submenu.ID] = *submenu
	return nil
}

func (f *fakeSubMenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.submenus, id)
	return nil
}

type fakeMenuChecker struct {
	existing map[uuid.UUID]bool
}

func (f *fakeMenuChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func TestSubMenuService_Create_UnknownMenuRejected(t *testing.T) {
	svc := NewSubMenuService(newFakeSubMenuRepo(), &fakeMenuChecker{}, newFakeCache(), testLogger())

	_, err := svc.Create(context.Background(), cache.NewTasks(), uuid.New(), models.SubMenuInput{Title: "Starters"}, uuid.Nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubMenuService_Create_InvalidatesAncestors(t *testing.T) {
	menuID := uuid.New()
	cached := newFakeCache()
	svc := NewSubMenuService(
		newFakeSubMenuRepo(),
		&fakeMenuChecker{existing: map[uuid.UUID]bool{menuID: true}},
		cached,
		testLogger(),
	)

	tasks := cache.NewTasks()
	submenu, err := svc.Create(context.Background(), tasks, menuID, models.SubMenuInput{Title: "Starters"}, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, menuID, submenu.MenuID)
	require.NoError(t, tasks.Flush(context.Background()))

	menuKey := menuID.String()
	assert.Equal(t, []string{
		"menus",
		"menu_" + menuKey,
		"menu_" + menuKey + "_submenus",
	}, cached.cleared)
}

func TestSubMenuService_Get_ReadThrough(t *testing.T) {
	menuID, id := uuid.New(), uuid.New()
	repo := newFakeSubMenuRepo()
	repo.submenus[id] = models.SubMenu{ID: id, MenuID: menuID, Title: "Starters"}
	svc := NewSubMenuService(repo, &fakeMenuChecker{}, newFakeCache(), testLogger())

	first, err := svc.Get(context.Background(), menuID, id)
	require.NoError(t, err)

	// remove from the repo; a cached read must still succeed
	delete(repo.submenus, id)
	second, err := svc.Get(context.Background(), menuID, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSubMenuService_Delete_ClearsSubtreeByMask(t *testing.T) {
	menuID, id := uuid.New(), uuid.New()
	repo := newFakeSubMenuRepo()
	repo.submenus[id] = models.SubMenu{ID: id, MenuID: menuID}
	cached := newFakeCache()
	svc := NewSubMenuService(repo, &fakeMenuChecker{}, cached, testLogger())

	tasks := cache.NewTasks()
	require.NoError(t, svc.Delete(context.Background(), tasks, menuID, id))
	require.NoError(t, tasks.Flush(context.Background()))

	menuKey := menuID.String()
	assert.Equal(t, []string{
		"menus",
		"menu_" + menuKey,
		"menu_" + menuKey + "_submenus",
	}, cached.cleared)
	assert.Equal(t, []string{"menu_" + menuKey + "_submenu_" + id.String()}, cached.masks)
}
