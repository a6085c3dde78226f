package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// ShoppingListRepo implements repo.ShoppingListRepository. Each profile
// owns at most one row, enforced by a unique index; the five list fields
// are JSON columns written back together in one statement.
type ShoppingListRepo struct {
	storage *Storage
}

// NewShoppingListRepository returns a shopping list repository backed by
// the storage.
func NewShoppingListRepository(storage *Storage) *ShoppingListRepo {
	return &ShoppingListRepo{storage: storage}
}

const listColumns = "list_id, profile_id, selected_dishes, manual_ingredients, excluded_ingredient_ids, checked_ingredient_ids, misc_items, created_at, updated_at"

// Find returns the profile's list or types.ErrNotFound. Read paths treat
// not-found as an empty list and never create the document.
func (r *ShoppingListRepo) Find(ctx context.Context, profileID string) (*types.ShoppingList, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	return r.find(ctx, profileID)
}

func (r *ShoppingListRepo) find(ctx context.Context, profileID string) (*types.ShoppingList, error) {
	row := r.storage.db.QueryRowContext(ctx,
		"SELECT "+listColumns+" FROM shopping_lists WHERE profile_id = ?", profileID)
	return scanShoppingList(row)
}

// FindOrCreate returns the profile's list, inserting an empty document when
// none exists. The insert ignores a conflicting row, so a concurrently
// created document is treated as success.
func (r *ShoppingListRepo) FindOrCreate(ctx context.Context, profileID string) (*types.ShoppingList, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	list, err := r.find(ctx, profileID)
	if err == nil {
		return list, nil
	}
	if err != types.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	empty := &types.ShoppingList{
		ListID:    newUUID(),
		ProfileID: profileID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields, err := marshalListFields(empty)
	if err != nil {
		return nil, err
	}
	_, err = r.storage.db.ExecContext(ctx, `
		INSERT INTO shopping_lists (`+listColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO NOTHING`,
		empty.ListID, profileID,
		fields.selectedDishes, fields.manualIngredients,
		fields.excludedIDs, fields.checkedIDs, fields.miscItems,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting shopping list: %w", err)
	}
	return r.find(ctx, profileID)
}

// Save writes the full document back. Returns types.ErrNotFound when the
// document was never created.
func (r *ShoppingListRepo) Save(ctx context.Context, list *types.ShoppingList) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	list.UpdatedAt = time.Now()
	fields, err := marshalListFields(list)
	if err != nil {
		return err
	}
	res, err := r.storage.db.ExecContext(ctx, `
		UPDATE shopping_lists
		SET selected_dishes = ?, manual_ingredients = ?, excluded_ingredient_ids = ?,
		    checked_ingredient_ids = ?, misc_items = ?, updated_at = ?
		WHERE list_id = ?`,
		fields.selectedDishes, fields.manualIngredients,
		fields.excludedIDs, fields.checkedIDs, fields.miscItems,
		formatTime(list.UpdatedAt), list.ListID)
	if err != nil {
		return fmt.Errorf("saving shopping list: %w", err)
	}
	return requireRow(res)
}

type listFields struct {
	selectedDishes    string
	manualIngredients string
	excludedIDs       string
	checkedIDs        string
	miscItems         string
}

func marshalListFields(list *types.ShoppingList) (listFields, error) {
	var f listFields
	var err error
	if f.selectedDishes, err = marshalJSON(orEmpty(list.SelectedDishes)); err != nil {
		return f, err
	}
	if f.manualIngredients, err = marshalJSON(orEmpty(list.ManualIngredients)); err != nil {
		return f, err
	}
	if f.excludedIDs, err = marshalJSON(orEmpty(list.ExcludedIngredientIDs)); err != nil {
		return f, err
	}
	if f.checkedIDs, err = marshalJSON(orEmpty(list.CheckedIngredientIDs)); err != nil {
		return f, err
	}
	if f.miscItems, err = marshalJSON(orEmpty(list.MiscItems)); err != nil {
		return f, err
	}
	return f, nil
}

// orEmpty keeps nil slices out of the stored JSON so columns always hold
// arrays, never null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling list field: %w", err)
	}
	return string(b), nil
}

func scanShoppingList(row rowScanner) (*types.ShoppingList, error) {
	var l types.ShoppingList
	var selectedDishes, manualIngredients, excludedIDs, checkedIDs, miscItems string
	var createdAt, updatedAt string
	err := row.Scan(&l.ListID, &l.ProfileID,
		&selectedDishes, &manualIngredients, &excludedIDs, &checkedIDs, &miscItems,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning shopping list: %w", err)
	}
	for _, field := range []struct {
		raw  string
		dest any
	}{
		{selectedDishes, &l.SelectedDishes},
		{manualIngredients, &l.ManualIngredients},
		{excludedIDs, &l.ExcludedIngredientIDs},
		{checkedIDs, &l.CheckedIngredientIDs},
		{miscItems, &l.MiscItems},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return nil, fmt.Errorf("parsing shopping list field: %w", err)
		}
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
