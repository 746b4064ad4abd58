package sync

import (
	"context"
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/cache"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/google/uuid"
)

// MenuStore is the menu-side store collaborator, implemented by the menu
// service so sync mutations share the CRUD path's cache invalidation
// rules.
type MenuStore interface {
	ListAll(ctx context.Context) ([]models.Menu, error)
	Create(ctx context.Context, tasks *cache.Tasks, input models.MenuInput, id uuid.UUID) (*models.Menu, error)
	Update(ctx context.Context, tasks *cache.Tasks, id uuid.UUID, input models.MenuInput) (*models.Menu, error)
	Delete(ctx context.Context, tasks *cache.Tasks, id uuid.UUID) error
}

// SubMenuStore is the submenu-side store collaborator
type SubMenuStore interface {
	ListAll(ctx context.Context) ([]models.SubMenu, error)
	Create(ctx context.Context, tasks *cache.Tasks, menuID uuid.UUID, input models.SubMenuInput, id uuid.UUID) (*models.SubMenu, error)
	Update(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID, input models.SubMenuInput) (*models.SubMenu, error)
	Delete(ctx context.Context, tasks *cache.Tasks, menuID, id uuid.UUID) error
}

// DishStore is the dish-side store collaborator
type DishStore interface {
	ListAll(ctx context.Context) ([]models.Dish, error)
	Create(ctx context.Context, tasks *cache.Tasks, menuID, submenuID uuid.UUID, input models.DishInput, id uuid.UUID) (*models.Dish, error)
	Update(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID, input models.DishInput) (*models.Dish, error)
	Delete(ctx context.Context, tasks *cache.Tasks, menuID, submenuID, id uuid.UUID) error
}

// Syncer reconciles the database against the spreadsheet source. One
// Run is one pass: read both sides into immutable snapshots, then a
// strict three-phase pipeline — menus, submenus, dishes — where each
// phase diffs, applies, and prunes the store snapshot for the next one.
type Syncer struct {
	source   Source
	menus    MenuStore
	submenus SubMenuStore
	dishes   DishStore
	log      *logger.Logger
}

// NewSyncer creates a new syncer
func NewSyncer(source Source, menus MenuStore, submenus SubMenuStore, dishes DishStore, log *logger.Logger) *Syncer {
	return &Syncer{
		source:   source,
		menus:    menus,
		submenus: submenus,
		dishes:   dishes,
		log:      log,
	}
}

// Run executes one reconciliation pass. A source read failure aborts the
// pass before any mutation; individual mutation failures are isolated in
// the report. Queued cache invalidations are drained once at the end.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	sourceSnap, err := s.source.Parse(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tabular source: %w", err)
	}

	storeSnap, err := s.loadStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store snapshot: %w", err)
	}

	tasks := cache.NewTasks()
	report := &Report{}

	menuDiff := diffRecords(sourceSnap.Menus, storeSnap.Menus, menuDeletion)
	s.applyMenus(ctx, tasks, menuDiff, report)
	storeSnap.PruneMenuChildren(menuDiff.Deletes)

	submenuDiff := diffRecords(sourceSnap.SubMenus, storeSnap.SubMenus, submenuDeletion)
	s.applySubMenus(ctx, tasks, submenuDiff, report)
	storeSnap.PruneSubMenuChildren(submenuDiff.Deletes)

	dishDiff := diffRecords(sourceSnap.Dishes, storeSnap.Dishes, dishDeletion)
	s.applyDishes(ctx, tasks, dishDiff, report)

	if err := tasks.Flush(ctx); err != nil {
		s.log.Warn("cache invalidation incomplete", "error", err)
	}

	s.log.Info("sync pass complete",
		"created", report.Created,
		"updated", report.Updated,
		"deleted", report.Deleted,
		"failed", len(report.Errors),
	)

	return report, nil
}

// loadStore reads all three kinds once, up front. The pass operates on
// this immutable snapshot; it never revisits the store for reads.
func (s *Syncer) loadStore(ctx context.Context) (*Snapshot, error) {
	menus, err := s.menus.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	submenus, err := s.submenus.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submenus: %w", err)
	}

	dishes, err := s.dishes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	return SnapshotFromStore(menus, submenus, dishes), nil
}

// Within a level, deletes run before creates so a reused identifier or
// title never collides with a row that is about to disappear.

func (s *Syncer) applyMenus(ctx context.Context, tasks *cache.Tasks, diff Diff[MenuRecord], report *Report) {
	for _, del := range diff.Deletes {
		id, err := uuid.Parse(del.ID)
		if err != nil {
			s.reportFailure(report, "menu", del.ID, err)
			continue
		}
		if err := s.menus.Delete(ctx, tasks, id); err != nil {
			s.reportFailure(report, "menu", del.ID, err)
			continue
		}
		report.Deleted++
	}

	for _, record := range diff.Creates {
		id, err := uuid.Parse(record.ID)
		if err != nil {
			s.reportFailure(report, "menu", record.ID, err)
			continue
		}
		input := models.MenuInput{Title: record.Title, Description: record.Description}
		if _, err := s.menus.Create(ctx, tasks, input, id); err != nil {
			s.reportFailure(report, "menu", record.ID, err)
			continue
		}
		report.Created++
	}

	for _, record := range diff.Updates {
		id, err := uuid.Parse(record.ID)
		if err != nil {
			s.reportFailure(report, "menu", record.ID, err)
			continue
		}
		input := models.MenuInput{Title: record.Title, Description: record.Description}
		if _, err := s.menus.Update(ctx, tasks, id, input); err != nil {
			s.reportFailure(report, "menu", record.ID, err)
			continue
		}
		report.Updated++
	}
}

func (s *Syncer) applySubMenus(ctx context.Context, tasks *cache.Tasks, diff Diff[SubMenuRecord], report *Report) {
	for _, del := range diff.Deletes {
		id, menuID, err := parseIDs(del.ID, del.MenuID)
		if err != nil {
			s.reportFailure(report, "submenu", del.ID, err)
			continue
		}
		if err := s.submenus.Delete(ctx, tasks, menuID, id); err != nil {
			s.reportFailure(report, "submenu", del.ID, err)
			continue
		}
		report.Deleted++
	}

	for _, record := range diff.Creates {
		id, menuID, err := parseIDs(record.ID, record.MenuID)
		if err != nil {
			s.reportFailure(report, "submenu", record.ID, err)
			continue
		}
		input := models.SubMenuInput{Title: record.Title, Description: record.Description}
		if _, err := s.submenus.Create(ctx, tasks, menuID, input, id); err != nil {
			s.reportFailure(report, "submenu", record.ID, err)
			continue
		}
		report.Created++
	}

	for _, record := range diff.Updates {
		id, menuID, err := parseIDs(record.ID, record.MenuID)
		if err != nil {
			s.reportFailure(report, "submenu", record.ID, err)
			continue
		}
		input := models.SubMenuInput{Title: record.Title, Description: record.Description}
		if _, err := s.submenus.Update(ctx, tasks, menuID, id, input); err != nil {
			s.reportFailure(report, "submenu", record.ID, err)
			continue
		}
		report.Updated++
	}
}

func (s *Syncer) applyDishes(ctx context.Context, tasks *cache.Tasks, diff Diff[DishRecord], report *Report) {
	for _, del := range diff.Deletes {
		id, menuID, err := parseIDs(del.ID, del.MenuID)
		if err != nil {
			s.reportFailure(report, "dish", del.ID, err)
			continue
		}
		submenuID, err := uuid.Parse(del.SubMenuID)
		if err != nil {
			s.reportFailure(report, "dish", del.ID, err)
			continue
		}
		if err := s.dishes.Delete(ctx, tasks, menuID, submenuID, id); err != nil {
			s.reportFailure(report, "dish", del.ID, err)
			continue
		}
		report.Deleted++
	}

	for _, record := range diff.Creates {
		id, menuID, submenuID, err := parseDishIDs(record)
		if err != nil {
			s.reportFailure(report, "dish", record.ID, err)
			continue
		}
		if _, err := s.dishes.Create(ctx, tasks, menuID, submenuID, dishInput(record), id); err != nil {
			s.reportFailure(report, "dish", record.ID, err)
			continue
		}
		report.Created++
	}

	for _, record := range diff.Updates {
		id, menuID, submenuID, err := parseDishIDs(record)
		if err != nil {
			s.reportFailure(report, "dish", record.ID, err)
			continue
		}
		if _, err := s.dishes.Update(ctx, tasks, menuID, submenuID, id, dishInput(record)); err != nil {
			s.reportFailure(report, "dish", record.ID, err)
			continue
		}
		report.Updated++
	}
}

func (s *Syncer) reportFailure(report *Report, kind, id string, err error) {
	report.fail(kind, id, err)
	s.log.Warn("sync mutation failed", "kind", kind, "id", id, "error", err)
}

func dishInput(record DishRecord) models.DishInput {
	return models.DishInput{
		Title:       record.Title,
		Description: record.Description,
		Price:       record.Price,
		Discount:    record.Discount,
	}
}

func parseIDs(rawID, rawMenuID string) (id, menuID uuid.UUID, err error) {
	if id, err = uuid.Parse(rawID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if menuID, err = uuid.Parse(rawMenuID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return id, menuID, nil
}

func parseDishIDs(record DishRecord) (id, menuID, submenuID uuid.UUID, err error) {
	if id, menuID, err = parseIDs(record.ID, record.MenuID); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	if submenuID, err = uuid.Parse(record.SubMenuID); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	return id, menuID, submenuID, nil
}
