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

// DishRepository handles database operations for dishes
type DishRepository struct {
	db *db.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *db.DB) *DishRepository {
	return &DishRepository{db: db}
}

// ListBySubMenu retrieves a submenu's dishes
func (r *DishRepository) ListBySubMenu(ctx context.Context, submenuID uuid.UUID) ([]models.Dish, error) {
	query := `
		SELECT d.id, d.submenu_id, d.title, d.description, d.price, d.discount, s.menu_id
		FROM dishes d
		JOIN submenus s ON s.id = d.submenu_id
		WHERE d.submenu_id = $1
		ORDER BY d.title ASC
	`

	rows, err := r.db.Query(ctx, query, submenuID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	return scanDishes(rows)
}

// ListAll retrieves every dish with its submenu and (via join) menu
// references. Used by the sync engine to build the store snapshot.
func (r *DishRepository) ListAll(ctx context.Context) ([]models.Dish, error) {
	query := `
		SELECT d.id, d.submenu_id, d.title, d.description, d.price, d.discount, s.menu_id
		FROM dishes d
		JOIN submenus s ON s.id = d.submenu_id
		ORDER BY d.title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all dishes: %w", err)
	}
	defer rows.Close()

	return scanDishes(rows)
}

// GetByID retrieves a dish by submenu and dish id
func (r *DishRepository) GetByID(ctx context.Context, submenuID, id uuid.UUID) (*models.Dish, error) {
	query := `
		SELECT d.id, d.submenu_id, d.title, d.description, d.price, d.discount, s.menu_id
		FROM dishes d
		JOIN submenus s ON s.id = d.submenu_id
		WHERE d.id = $1 AND d.submenu_id = $2
	`

	dish := &models.Dish{}
	err := r.db.QueryRow(ctx, query, id, submenuID).Scan(
		&dish.ID,
		&dish.SubMenuID,
		&dish.Title,
		&dish.Description,
		&dish.Price,
		&dish.Discount,
		&dish.MenuID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	return dish, nil
}

// Create inserts a new dish with a caller-supplied id
func (r *DishRepository) Create(ctx context.Context, dish *models.Dish) error {
	query := `
		INSERT INTO dishes (id, submenu_id, title, description, price, discount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		dish.ID,
		dish.SubMenuID,
		dish.Title,
		dish.Description,
		dish.Price,
		dish.Discount,
	)
	if err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}

	return nil
}

// Update updates a dish's fields
func (r *DishRepository) Update(ctx context.Context, dish *models.Dish) error {
	query := `
		UPDATE dishes
		SET title = $2, description = $3, price = $4, discount = $5
		WHERE id = $1
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		dish.ID,
		dish.Title,
		dish.Description,
		dish.Price,
		dish.Discount,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}

	return nil
}

// Delete removes a dish. Deleting a missing id is a no-op.
func (r *DishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM dishes WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	return nil
}

func scanDishes(rows pgx.Rows) ([]models.Dish, error) {
	var dishes []models.Dish
	for rows.Next() {
		var dish models.Dish
		err := rows.Scan(
			&dish.ID,
			&dish.SubMenuID,
			&dish.Title,
			&dish.Description,
			&dish.Price,
			&dish.Discount,
			&dish.MenuID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}
