package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// DishRepo implements repo.DishRepository. Dish items are persisted as a
// JSON column so every dish write is a single-row statement.
type DishRepo struct {
	storage *Storage
}

// NewDishRepository returns a dish repository backed by the storage.
func NewDishRepository(storage *Storage) *DishRepo {
	return &DishRepo{storage: storage}
}

const dishColumns = "dish_id, profile_id, name, items, created_at, updated_at"

// List returns all dishes of the profile in insertion order.
func (r *DishRepo) List(ctx context.Context, profileID string) ([]*types.Dish, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	rows, err := r.storage.db.QueryContext(ctx,
		"SELECT "+dishColumns+" FROM dishes WHERE profile_id = ? ORDER BY created_at, dish_id",
		profileID)
	if err != nil {
		return nil, fmt.Errorf("listing dishes: %w", err)
	}
	defer rows.Close()

	var dishes []*types.Dish
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

// Get retrieves a dish by ID. Returns types.ErrNotFound when absent.
func (r *DishRepo) Get(ctx context.Context, id string) (*types.Dish, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	row := r.storage.db.QueryRowContext(ctx,
		"SELECT "+dishColumns+" FROM dishes WHERE dish_id = ?", id)
	return scanDish(row)
}

// Create inserts a new dish, generating its ID and timestamps.
func (r *DishRepo) Create(ctx context.Context, dish *types.Dish) (string, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	now := time.Now()
	dish.DishID = newUUID()
	dish.CreatedAt = now
	dish.UpdatedAt = now

	items, err := marshalDishItems(dish.Items)
	if err != nil {
		return "", err
	}
	_, err = r.storage.db.ExecContext(ctx, `
		INSERT INTO dishes (dish_id, profile_id, name, items, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		dish.DishID, dish.ProfileID, dish.Name, items,
		formatTime(dish.CreatedAt), formatTime(dish.UpdatedAt))
	if err != nil {
		return "", fmt.Errorf("inserting dish: %w", err)
	}
	return dish.DishID, nil
}

// Update writes the full record back. Returns types.ErrNotFound when the
// dish does not exist.
func (r *DishRepo) Update(ctx context.Context, dish *types.Dish) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	dish.UpdatedAt = time.Now()
	items, err := marshalDishItems(dish.Items)
	if err != nil {
		return err
	}
	res, err := r.storage.db.ExecContext(ctx, `
		UPDATE dishes SET name = ?, items = ?, updated_at = ?
		WHERE dish_id = ?`,
		dish.Name, items, formatTime(dish.UpdatedAt), dish.DishID)
	if err != nil {
		return fmt.Errorf("updating dish: %w", err)
	}
	return requireRow(res)
}

// Delete removes the dish record. Returns types.ErrNotFound when absent.
func (r *DishRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, "DELETE FROM dishes WHERE dish_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting dish: %w", err)
	}
	return requireRow(res)
}

func marshalDishItems(items []types.DishItem) (string, error) {
	if items == nil {
		items = []types.DishItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling dish items: %w", err)
	}
	return string(b), nil
}

func scanDish(row rowScanner) (*types.Dish, error) {
	var d types.Dish
	var items, createdAt, updatedAt string
	err := row.Scan(&d.DishID, &d.ProfileID, &d.Name, &items, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning dish: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &d.Items); err != nil {
		return nil, fmt.Errorf("parsing dish items: %w", err)
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
