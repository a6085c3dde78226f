package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/types"
)

const testProfile = "household-1"

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStoreRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	repo := NewStoreRepository(storage)

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		id, err := repo.Create(ctx, &types.Store{ProfileID: testProfile, Name: "Grocer", SortOrder: 0, Color: "#ff8800"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Grocer", got.Name)
		assert.Equal(t, "#ff8800", got.Color)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("list sorts by sort order", func(t *testing.T) {
		_, err := repo.Create(ctx, &types.Store{ProfileID: testProfile, Name: "Bakery", SortOrder: 2})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &types.Store{ProfileID: testProfile, Name: "Butcher", SortOrder: 1})
		require.NoError(t, err)

		stores, err := repo.List(ctx, testProfile)
		require.NoError(t, err)
		require.Len(t, stores, 3)
		assert.Equal(t, "Grocer", stores[0].Name)
		assert.Equal(t, "Butcher", stores[1].Name)
		assert.Equal(t, "Bakery", stores[2].Name)
	})

	t.Run("list is profile scoped", func(t *testing.T) {
		stores, err := repo.List(ctx, "other-profile")
		require.NoError(t, err)
		assert.Empty(t, stores)
	})

	t.Run("update rewrites fields", func(t *testing.T) {
		stores, err := repo.List(ctx, testProfile)
		require.NoError(t, err)
		store := stores[0]
		store.Name = "Greengrocer"
		store.SortOrder = 5

		require.NoError(t, repo.Update(ctx, store))

		got, err := repo.Get(ctx, store.StoreID)
		require.NoError(t, err)
		assert.Equal(t, "Greengrocer", got.Name)
		assert.Equal(t, 5, got.SortOrder)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, "no-such-id")
		assert.ErrorIs(t, err, types.ErrNotFound)

		err = repo.Update(ctx, &types.Store{StoreID: "no-such-id", Name: "x"})
		assert.ErrorIs(t, err, types.ErrNotFound)

		err = repo.Delete(ctx, "no-such-id")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		stores, err := repo.List(ctx, testProfile)
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, stores[0].StoreID))

		_, err = repo.Get(ctx, stores[0].StoreID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestIngredientRepo_ClearStore(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	repo := NewIngredientRepository(storage)

	id1, err := repo.Create(ctx, &types.Ingredient{ProfileID: testProfile, Name: "Milk", StoreID: "s1"})
	require.NoError(t, err)
	id2, err := repo.Create(ctx, &types.Ingredient{ProfileID: testProfile, Name: "Eggs", StoreID: "s1"})
	require.NoError(t, err)
	id3, err := repo.Create(ctx, &types.Ingredient{ProfileID: testProfile, Name: "Bread", StoreID: "s2"})
	require.NoError(t, err)

	cleared, err := repo.ClearStore(ctx, testProfile, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	for _, id := range []string{id1, id2} {
		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, got.StoreID)
	}
	got, err := repo.Get(ctx, id3)
	require.NoError(t, err)
	assert.Equal(t, "s2", got.StoreID)
}

func TestDishRepo_ItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	repo := NewDishRepository(storage)

	id, err := repo.Create(ctx, &types.Dish{
		ProfileID: testProfile,
		Name:      "Pancakes",
		Items: []types.DishItem{
			{IngredientID: "i1", Quantity: 2},
			{IngredientID: "i2", Quantity: 0.5},
		},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2.0, got.Items[0].Quantity)
	assert.Equal(t, "i2", got.Items[1].IngredientID)

	t.Run("empty items stay an empty array", func(t *testing.T) {
		id, err := repo.Create(ctx, &types.Dish{ProfileID: testProfile, Name: "Water"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
	})
}

func TestShoppingListRepo(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	repo := NewShoppingListRepository(storage)

	t.Run("find before create returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Find(ctx, testProfile)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("find or create inserts once", func(t *testing.T) {
		first, err := repo.FindOrCreate(ctx, testProfile)
		require.NoError(t, err)
		require.NotEmpty(t, first.ListID)

		second, err := repo.FindOrCreate(ctx, testProfile)
		require.NoError(t, err)
		assert.Equal(t, first.ListID, second.ListID)
	})

	t.Run("save round-trips all fields", func(t *testing.T) {
		list, err := repo.FindOrCreate(ctx, testProfile)
		require.NoError(t, err)

		list.AddDish("d1")
		list.AddDish("d1")
		require.NoError(t, list.AddManualIngredient("i1", 2.5))
		list.ExcludeIngredient("i2")
		list.CheckItem("i3")
		list.AddMiscItem("m1", "Batteries", "s1")

		require.NoError(t, repo.Save(ctx, list))

		got, err := repo.Find(ctx, testProfile)
		require.NoError(t, err)
		require.Len(t, got.SelectedDishes, 1)
		assert.Equal(t, 2, got.SelectedDishes[0].Count)
		require.Len(t, got.ManualIngredients, 1)
		assert.Equal(t, 2.5, got.ManualIngredients[0].Quantity)
		assert.Equal(t, []string{"i2"}, got.ExcludedIngredientIDs)
		assert.Equal(t, []string{"i3"}, got.CheckedIngredientIDs)
		require.Len(t, got.MiscItems, 1)
		assert.Equal(t, "Batteries", got.MiscItems[0].Name)
	})

	t.Run("save of an unknown document returns ErrNotFound", func(t *testing.T) {
		err := repo.Save(ctx, &types.ShoppingList{ListID: "no-such-id", ProfileID: "p"})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
