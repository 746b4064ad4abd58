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

// MenuRepository handles database operations for menus
type MenuRepository struct {
	db *db.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *db.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// List retrieves all menus with submenu and dish counts
func (r *MenuRepository) List(ctx context.Context) ([]models.Menu, error) {
	query := `
		SELECT m.id, m.title, m.description,
		       (SELECT COUNT(*) FROM submenus s WHERE s.menu_id = m.id) AS submenus_count,
		       (SELECT COUNT(*)
		          FROM dishes d
		          JOIN submenus s ON s.id = d.submenu_id
		         WHERE s.menu_id = m.id) AS dishes_count
		FROM menus m
		ORDER BY m.title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []models.Menu
	for rows.Next() {
		var menu models.Menu
		err := rows.Scan(
			&menu.ID,
			&menu.Title,
			&menu.Description,
			&menu.SubmenusCount,
			&menu.DishesCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	return menus, nil
}

// GetByID retrieves a menu by id
func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	query := `
		SELECT m.id, m.title, m.description,
		       (SELECT COUNT(*) FROM submenus s WHERE s.menu_id = m.id) AS submenus_count,
		       (SELECT COUNT(*)
		          FROM dishes d
		          JOIN submenus s ON s.id = d.submenu_id
		         WHERE s.menu_id = m.id) AS dishes_count
		FROM menus m
		WHERE m.id = $1
	`

	menu := &models.Menu{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&menu.ID,
		&menu.Title,
		&menu.Description,
		&menu.SubmenusCount,
		&menu.DishesCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return menu, nil
}

// Create inserts a new menu with a caller-supplied id
func (r *MenuRepository) Create(ctx context.Context, menu *models.Menu) error {
	query := `
		INSERT INTO menus (id, title, description)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, menu.ID, menu.Title, menu.Description)
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}

	return nil
}

// Update updates a menu's title and description
func (r *MenuRepository) Update(ctx context.Context, menu *models.Menu) error {
	query := `
		UPDATE menus
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, menu.ID, menu.Title, menu.Description).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}

	return nil
}

// Delete removes a menu. Submenus and dishes go with it (ON DELETE
// CASCADE). Deleting a missing id is a no-op.
func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menus WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	return nil
}

// Exists checks if a menu exists
func (r *MenuRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM menus WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check menu existence: %w", err)
	}

	return exists, nil
}
