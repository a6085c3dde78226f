package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// IngredientRepo implements repo.IngredientRepository.
type IngredientRepo struct {
	storage *Storage
}

// NewIngredientRepository returns an ingredient repository backed by the
// storage.
func NewIngredientRepository(storage *Storage) *IngredientRepo {
	return &IngredientRepo{storage: storage}
}

const ingredientColumns = "ingredient_id, profile_id, name, store_id, created_at, updated_at"

// List returns all ingredients of the profile in insertion order.
func (r *IngredientRepo) List(ctx context.Context, profileID string) ([]*types.Ingredient, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	rows, err := r.storage.db.QueryContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE profile_id = ? ORDER BY created_at, ingredient_id",
		profileID)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*types.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// Get retrieves an ingredient by ID. Returns types.ErrNotFound when absent.
func (r *IngredientRepo) Get(ctx context.Context, id string) (*types.Ingredient, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	row := r.storage.db.QueryRowContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE ingredient_id = ?", id)
	return scanIngredient(row)
}

// Create inserts a new ingredient, generating its ID and timestamps.
func (r *IngredientRepo) Create(ctx context.Context, ingredient *types.Ingredient) (string, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	now := time.Now()
	ingredient.IngredientID = newUUID()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now

	_, err := r.storage.db.ExecContext(ctx, `
		INSERT INTO ingredients (ingredient_id, profile_id, name, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ingredient.IngredientID, ingredient.ProfileID, ingredient.Name,
		nullable(ingredient.StoreID),
		formatTime(ingredient.CreatedAt), formatTime(ingredient.UpdatedAt))
	if err != nil {
		return "", fmt.Errorf("inserting ingredient: %w", err)
	}
	return ingredient.IngredientID, nil
}

// Update writes the full record back. Returns types.ErrNotFound when the
// ingredient does not exist.
func (r *IngredientRepo) Update(ctx context.Context, ingredient *types.Ingredient) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	ingredient.UpdatedAt = time.Now()
	res, err := r.storage.db.ExecContext(ctx, `
		UPDATE ingredients SET name = ?, store_id = ?, updated_at = ?
		WHERE ingredient_id = ?`,
		ingredient.Name, nullable(ingredient.StoreID),
		formatTime(ingredient.UpdatedAt), ingredient.IngredientID)
	if err != nil {
		return fmt.Errorf("updating ingredient: %w", err)
	}
	return requireRow(res)
}

// Delete removes the ingredient record. Returns types.ErrNotFound when
// absent.
func (r *IngredientRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, "DELETE FROM ingredients WHERE ingredient_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting ingredient: %w", err)
	}
	return requireRow(res)
}

// ClearStore unsets the store reference on every ingredient of the profile
// that points at storeID.
func (r *IngredientRepo) ClearStore(ctx context.Context, profileID, storeID string) (int, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, `
		UPDATE ingredients SET store_id = NULL, updated_at = ?
		WHERE profile_id = ? AND store_id = ?`,
		formatTime(time.Now()), profileID, storeID)
	if err != nil {
		return 0, fmt.Errorf("clearing store refs: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanIngredient(row rowScanner) (*types.Ingredient, error) {
	var ing types.Ingredient
	var storeID sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&ing.IngredientID, &ing.ProfileID, &ing.Name, &storeID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ingredient: %w", err)
	}
	ing.StoreID = storeID.String
	if ing.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if ing.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &ing, nil
}
