package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns a fixed snapshot
type fakeSource struct {
	snap *Snapshot
	err  error
}

func (f *fakeSource) Parse(ctx context.Context) (*Snapshot, error) {
	return f.snap, f.err
}

// storeState is shared by the three fake stores. Deleting a parent
// removes its children, mirroring the database's cascade.
type storeState struct {
	menus    map[uuid.UUID]models.Menu
	submenus map[uuid.UUID]models.SubMenu
	dishes   map[uuid.UUID]models.Dish
}

func newStoreState() *storeState {
	return &storeState{
		menus:    make(map[uuid.UUID]models.Menu),
		submenus: make(map[uuid.UUID]models.SubMenu),
		dishes:   make(map[uuid.UUID]models.Dish),
	}
}

type fakeMenuStore struct {
	state      *storeState
	failCreate map[uuid.UUID]error
}

func (f *fakeMenuStore) ListAll(ctx context.Context) ([]models.Menu, error) {
	menus := make([]models.Menu, 0, len(f.state.menus))
	for _, menu := range f.state.menus {
		menus = append(menus, menu)
	}
	return menus, nil
}

func (f *fakeMenuStore) Create(ctx context.Context, tasks *cache.Tasks, input models.MenuInput, id uuid.UUID) (*models.Menu, error) {
	if err := f.failCreate[id]; err != nil {
		return nil, err
	}
	menu := models.Menu{ID: id, Title: input.Title, Description: input.Description}
	f.state.menus[id] = menu
	return &menu, nil
}

func (f *fakeMenuStore) Update(ctx context.Context, tasks *cache.Tasks, id uuid.UUID, input models.MenuInput) (*models.Menu, error) {
	menu := models.Menu{ID: id, Title: input.Title, Description: input.Description}
	f.state.menus[id] = menu
	return &menu, nil
}

func (f *fakeMenuStore) Delete(ctx context.Context, tasks *cache.Tasks, id uuid.UUID) error {
	delete(f.state.menus, id)
	for sid, submenu := range f.state.submenus {
		if submenu.MenuID == id {
			delete(f.state.submenus, sid)
		}
	}
	for did, dish := range f.state.dishes {
		if dish.MenuID == id {
			delete(f.state.dishes, did)
		}
	}
	return nil
}

type fakeSubMenuStore struct {
	state *storeState
}

func (f *fakeSubMenuStore) ListAll(ctx context.Context) ([]models.SubMenu, error) {
	submenus := make([]models.SubMenu, 0, len(f.state.submenus))
	for _, submenu := range f.state.submenus {
		submenus = append(submenus, submenu)
	}
	return submenus, nil
}

func (f *fakeSubMenuStore) Create(ctx context.Context, tasks *cache.Tasks, menuID uuid.UUID, input models.SubMenuInput, id uuid.UUID) (*models.SubMenu, error) {
	submenu := models.SubMenu{ID: id, MenuID: menuID, Title: input.Title, Description: input.Description}
	f.state.submenus[id] = submenu
	return &submenu, nil
}

func (f *fakeSubMenuStore) Update(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID, input models.SubMenuInput) (*models.SubMenu, error) {
	submenu := models.SubMenu{ID: id, MenuID: menuID, Title: input.Title, Description: input.Description}
	f.state.submenus[id] = submenu
	return &submenu, nil
}

func (f *fakeSubMenuStore) Delete(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID) error {
	delete(f.state.submenus, id)
	for did, dish := range f.state.dishes {
		if dish.SubMenuID == id {
			delete(f.state.dishes, did)
		}
	}
	return nil
}

type fakeDishStore struct {
	state      *storeState
	failCreate map[uuid.UUID]error
}

func (f *fakeDishStore) ListAll(ctx context.Context) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0, len(f.state.dishes))
	for _, dish := range f.state.dishes {
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

func (f *fakeDishStore) Create(ctx context.Context, tasks *cache.Tasks, menuID, submenuID uuid.UUID, input models.DishInput, id uuid.UUID) (*models.Dish, error) {
	if err := f.failCreate[id]; err != nil {
		return nil, err
	}
	dish := f.dishFromInput(menuID, submenuID, id, input)
	f.state.dishes[id] = dish
	return &dish, nil
}

func (f *fakeDishStore) Update(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID, input models.DishInput) (*models.Dish, error) {
	dish := f.dishFromInput(menuID, submenuID, id, input)
	f.state.dishes[id] = dish
	return &dish, nil
}

func (f *fakeDishStore) Delete(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID) error {
	delete(f.state.dishes, id)
	return nil
}

func (f *fakeDishStore) dishFromInput(menuID, submenuID, id uuid.UUID, input models.DishInput) models.Dish {
	return models.Dish{
		ID:          id,
		MenuID:      menuID,
		SubMenuID:   submenuID,
		Title:       input.Title,
		Description: input.Description,
		Price:       decimal.RequireFromString(input.Price),
		Discount:    decimal.RequireFromString(input.Discount),
	}
}

func newTestSyncer(source Source, state *storeState) *Syncer {
	return NewSyncer(
		source,
		&fakeMenuStore{state: state},
		&fakeSubMenuStore{state: state},
		&fakeDishStore{state: state},
		testLogger(),
	)
}

func sheetSnapshot(menuID, submenuID, dishID uuid.UUID) *Snapshot {
	snap := NewSnapshot()
	snap.Menus[menuID.String()] = MenuRecord{
		ID:    menuID.String(),
		Title: "Food",
	}
	snap.SubMenus[submenuID.String()] = SubMenuRecord{
		ID:     submenuID.String(),
		Title:  "Starters",
		MenuID: menuID.String(),
	}
	snap.Dishes[dishID.String()] = DishRecord{
		ID:        dishID.String(),
		Title:     "Soup",
		Price:     "12.50",
		Discount:  "0.10",
		MenuID:    menuID.String(),
		SubMenuID: submenuID.String(),
	}
	return snap
}

func TestSyncer_Run_CreatesFromEmptyStore(t *testing.T) {
	menuID, submenuID, dishID := uuid.New(), uuid.New(), uuid.New()
	state := newStoreState()
	syncer := newTestSyncer(&fakeSource{snap: sheetSnapshot(menuID, submenuID, dishID)}, state)

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 0, report.Deleted)
	assert.False(t, report.Failed())

	assert.Contains(t, state.menus, menuID)
	assert.Contains(t, state.submenus, submenuID)
	assert.Contains(t, state.dishes, dishID)
	assert.Equal(t, menuID, state.submenus[submenuID].MenuID)
	assert.Equal(t, submenuID, state.dishes[dishID].SubMenuID)
}

func TestSyncer_Run_Idempotent(t *testing.T) {
	menuID, submenuID, dishID := uuid.New(), uuid.New(), uuid.New()
	state := newStoreState()
	syncer := newTestSyncer(&fakeSource{snap: sheetSnapshot(menuID, submenuID, dishID)}, state)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Empty(), "second pass over unchanged source must change nothing")
}

func TestSyncer_Run_UpdatesChangedRecordsOnly(t *testing.T) {
	menuID, submenuID, dishID := uuid.New(), uuid.New(), uuid.New()
	state := newStoreState()
	syncer := newTestSyncer(&fakeSource{snap: sheetSnapshot(menuID, submenuID, dishID)}, state)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	changed := sheetSnapshot(menuID, submenuID, dishID)
	dish := changed.Dishes[dishID.String()]
	dish.Price = "15.00"
	changed.Dishes[dishID.String()] = dish
	syncer.source = &fakeSource{snap: changed}

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Deleted)
	assert.Equal(t, "15.00", state.dishes[dishID].Price.StringFixed(2))
}

// A menu removed from the sheet is one delete; its children disappear by
// cascade and must not be counted or re-deleted at the lower levels.
func TestSyncer_Run_MenuRemovalCascades(t *testing.T) {
	menuID, submenuID, dishID := uuid.New(), uuid.New(), uuid.New()
	state := newStoreState()
	syncer := newTestSyncer(&fakeSource{snap: sheetSnapshot(menuID, submenuID, dishID)}, state)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	syncer.source = &fakeSource{snap: NewSnapshot()}
	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Deleted)
	assert.False(t, report.Failed())
	assert.Empty(t, state.menus)
	assert.Empty(t, state.submenus)
	assert.Empty(t, state.dishes)
}

func TestSyncer_Run_PartialFailureIsolated(t *testing.T) {
	menuID, submenuID, dishID := uuid.New(), uuid.New(), uuid.New()
	state := newStoreState()
	source := &fakeSource{snap: sheetSnapshot(menuID, submenuID, dishID)}
	syncer := NewSyncer(
		source,
		&fakeMenuStore{state: state},
		&fakeSubMenuStore{state: state},
		&fakeDishStore{state: state, failCreate: map[uuid.UUID]error{dishID: errors.New("boom")}},
		testLogger(),
	)

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created, "menu and submenu still applied")
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "dish", report.Errors[0].Kind)
	assert.Equal(t, dishID.String(), report.Errors[0].ID)
	assert.NotContains(t, state.dishes, dishID)
}

func TestSyncer_Run_NonUUIDIdentifierReported(t *testing.T) {
	state := newStoreState()
	snap := NewSnapshot()
	snap.Menus["not-a-uuid"] = MenuRecord{ID: "not-a-uuid", Title: "Broken"}
	syncer := newTestSyncer(&fakeSource{snap: snap}, state)

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "menu", report.Errors[0].Kind)
	assert.Empty(t, state.menus)
}

func TestSyncer_Run_SourceFailureAborts(t *testing.T) {
	menuID := uuid.New()
	state := newStoreState()
	state.menus[menuID] = models.Menu{ID: menuID, Title: "Food"}
	syncer := newTestSyncer(&fakeSource{err: errors.New("download failed")}, state)

	_, err := syncer.Run(context.Background())
	require.Error(t, err)

	assert.Contains(t, state.menus, menuID, "store must be untouched when the source is unreadable")
}
