package container

import (
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/repository"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/service"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/sync"
	"github.com/KuzenkovAG/restaurant-menu/common/bootstrap"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components

	// Repositories
	MenuRepo    *repository.MenuRepository
	SubMenuRepo *repository.SubMenuRepository
	DishRepo    *repository.DishRepository

	// Services
	MenuService    *service.MenuService
	SubMenuService *service.SubMenuService
	DishService    *service.DishService

	// Reconciliation
	Syncer    *sync.Syncer
	Scheduler *sync.Scheduler
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	if components.DB == nil {
		return nil, fmt.Errorf("container requires a database connection")
	}
	if components.Cache == nil {
		return nil, fmt.Errorf("container requires the entity cache")
	}

	// Initialize repositories
	menuRepo := repository.NewMenuRepository(components.DB)
	submenuRepo := repository.NewSubMenuRepository(components.DB)
	dishRepo := repository.NewDishRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	menuService := service.NewMenuService(menuRepo, components.Cache, components.Logger)
	submenuService := service.NewSubMenuService(submenuRepo, menuRepo, components.Cache, components.Logger)
	dishService := service.NewDishService(dishRepo, components.Cache, components.Logger)

	// Initialize the reconciliation engine. Sync mutations go through the
	// services so they share the CRUD path's cache invalidation rules.
	source := sync.NewExcelSource(components.Config.Sync.Source, components.Logger)
	syncer := sync.NewSyncer(source, menuService, submenuService, dishService, components.Logger)

	var scheduler *sync.Scheduler
	if components.Config.Sync.Enabled {
		scheduler = sync.NewScheduler(
			syncer,
			components.Redis,
			components.Config.Sync.Interval,
			components.Logger,
		)
	}

	return &Container{
		Components:     components,
		MenuRepo:       menuRepo,
		SubMenuRepo:    submenuRepo,
		DishRepo:       dishRepo,
		MenuService:    menuService,
		SubMenuService: submenuService,
		DishService:    dishService,
		Syncer:         syncer,
		Scheduler:      scheduler,
	}, nil
}
