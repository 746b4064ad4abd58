package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubMenuRepository handles database operations for submenus
type SubMenuRepository struct {
	db *db.DB
}

// NewSubMenuRepository creates a new submenu repository
func NewSubMenuRepository(db *db.DB) *SubMenuRepository {
	return &SubMenuRepository{db: db}
}

// ListByMenu retrieves a menu's submenus with dish counts
func (r *SubMenuRepository) ListByMenu(ctx context.Context, menuID uuid.UUID) ([]models.SubMenu, error) {
	query := `
		SELECT s.id, s.menu_id, s.title, s.description,
		       (SELECT COUNT(*) FROM dishes d WHERE d.submenu_id = s.id) AS dishes_count
		FROM submenus s
		WHERE s.menu_id = $1
		ORDER BY s.title ASC
	`

	rows, err := r.db.Query(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submenus: %w", err)
	}
	defer rows.Close()

	return scanSubMenus(rows)
}

// ListAll retrieves every submenu with its parent menu reference.
// Used by the sync engine to build the store snapshot.
func (r *SubMenuRepository) ListAll(ctx context.Context) ([]models.SubMenu, error) {
	query := `
		SELECT s.id, s.menu_id, s.title, s.description,
		       (SELECT COUNT(*) FROM dishes d WHERE d.submenu_id = s.id) AS dishes_count
		FROM submenus s
		ORDER BY s.title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all submenus: %w", err)
	}
	defer rows.Close()

	return scanSubMenus(rows)
}

// GetByID retrieves a submenu by menu and submenu id
func (r *SubMenuRepository) GetByID(ctx context.Context, menuID, id uuid.UUID) (*models.SubMenu, error) {
	query := `
		SELECT s.id, s.menu_id, s.title, s.description,
		       (SELECT COUNT(*) FROM dishes d WHERE d.submenu_id = s.id) AS dishes_count
		FROM submenus s
		WHERE s.id = $1 AND s.menu_id = $2
	`

	submenu := &models.SubMenu{}
	err := r.db.QueryRow(ctx, query, id, menuID).Scan(
		&submenu.ID,
		&submenu.MenuID,
		&submenu.Title,
		&submenu.Description,
		&submenu.DishesCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submenu: %w", err)
	}

	return submenu, nil
}

// Create inserts a new submenu with a caller-supplied id
func (r *SubMenuRepository) Create(ctx context.Context, submenu *models.SubMenu) error {
	query := `
		INSERT INTO submenus (id, menu_id, title, description)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		submenu.ID,
		submenu.MenuID,
		submenu.Title,
		submenu.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create submenu: %w", err)
	}

	return nil
}

// Update updates a submenu's title and description
func (r *SubMenuRepository) Update(ctx context.Context, submenu *models.SubMenu) error {
	query := `
		UPDATE submenus
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, submenu.ID, submenu.Title, submenu.Description).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update submenu: %w", err)
	}

	return nil
}

// Delete removes a submenu. Its dishes go with it (ON DELETE CASCADE).
// Deleting a missing id is a no-op.
func (r *SubMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM submenus WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete submenu: %w", err)
	}

	return nil
}

func scanSubMenus(rows pgx.Rows) ([]models.SubMenu, error) {
	var submenus []models.SubMenu
	for rows.Next() {
		var submenu models.SubMenu
		err := rows.Scan(
			&submenu.ID,
			&submenu.MenuID,
			&submenu.Title,
			&submenu.Description,
			&submenu.DishesCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submenu: %w", err)
		}
		submenus = append(submenus, submenu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submenus: %w", err)
	}

	return submenus, nil
}
