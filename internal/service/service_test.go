package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/sqlite"
	"github.com/mesh-intelligence/larder/pkg/types"
)

const testProfile = "household-1"

// fixture wires the services over an in-memory database and blob store.
type fixture struct {
	catalog  *CatalogService
	dishes   *DishService
	shopping *ShoppingService
	blobs    *blob.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	storage, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	stores := sqlite.NewStoreRepository(storage)
	ingredients := sqlite.NewIngredientRepository(storage)
	dishes := sqlite.NewDishRepository(storage)
	lists := sqlite.NewShoppingListRepository(storage)

	blobs := blob.NewMemory()
	logger := zap.NewNop().Sugar()

	return &fixture{
		catalog:  NewCatalogService(stores, ingredients, dishes, lists, blobs, logger),
		dishes:   NewDishService(dishes, ingredients, logger),
		shopping: NewShoppingService(lists, dishes, ingredients, stores, logger),
		blobs:    blobs,
	}
}

func (f *fixture) mustStore(t *testing.T, ctx context.Context, name string) string {
	t.Helper()
	id, err := f.catalog.CreateStore(ctx, testProfile, name, "", "")
	require.NoError(t, err)
	return id
}

func (f *fixture) mustIngredient(t *testing.T, ctx context.Context, name, storeID string) string {
	t.Helper()
	id, err := f.catalog.CreateIngredient(ctx, testProfile, name, storeID)
	require.NoError(t, err)
	return id
}

func (f *fixture) mustDish(t *testing.T, ctx context.Context, name string, items []types.DishItem) string {
	t.Helper()
	id, err := f.dishes.CreateDish(ctx, testProfile, name, items)
	require.NoError(t, err)
	return id
}
