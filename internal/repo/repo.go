// Package repo declares the repository interfaces the services consume.
// The sqlite package provides the production implementations.
package repo

import (
	"context"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// StoreRepository persists stores.
type StoreRepository interface {
	// List returns the profile's stores sorted ascending by sort order,
	// ties broken by insertion order.
	List(ctx context.Context, profileID string) ([]*types.Store, error)
	Get(ctx context.Context, id string) (*types.Store, error)
	// Create assigns the ID and timestamps and returns the new ID.
	Create(ctx context.Context, store *types.Store) (string, error)
	Update(ctx context.Context, store *types.Store) error
	Delete(ctx context.Context, id string) error
}

// IngredientRepository persists catalog ingredients.
type IngredientRepository interface {
	List(ctx context.Context, profileID string) ([]*types.Ingredient, error)
	Get(ctx context.Context, id string) (*types.Ingredient, error)
	Create(ctx context.Context, ingredient *types.Ingredient) (string, error)
	Update(ctx context.Context, ingredient *types.Ingredient) error
	Delete(ctx context.Context, id string) error
	// ClearStore unsets the store reference on every ingredient of the
	// profile that points at storeID. Returns the number of rows changed.
	ClearStore(ctx context.Context, profileID, storeID string) (int, error)
}

// DishRepository persists dishes.
type DishRepository interface {
	List(ctx context.Context, profileID string) ([]*types.Dish, error)
	Get(ctx context.Context, id string) (*types.Dish, error)
	Create(ctx context.Context, dish *types.Dish) (string, error)
	Update(ctx context.Context, dish *types.Dish) error
	Delete(ctx context.Context, id string) error
}

// ShoppingListRepository persists the single per-profile list document.
type ShoppingListRepository interface {
	// Find returns the profile's list, or types.ErrNotFound when none has
	// been created yet. Read paths treat that as an empty list.
	Find(ctx context.Context, profileID string) (*types.ShoppingList, error)
	// FindOrCreate returns the profile's list, creating an empty one when
	// absent. An already-existing document is success, not a conflict.
	FindOrCreate(ctx context.Context, profileID string) (*types.ShoppingList, error)
	// Save writes the full document back.
	Save(ctx context.Context, list *types.ShoppingList) error
}
