package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/types"
)

func TestGetAggregated_QuantityWeightedTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	pancakes := f.mustDish(t, ctx, "Pancakes", []types.DishItem{{IngredientID: milk, Quantity: 2}})

	require.NoError(t, f.shopping.AddDish(ctx, testProfile, pancakes))
	require.NoError(t, f.shopping.AddDish(ctx, testProfile, pancakes))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, milk, item.IngredientID)
	assert.Equal(t, 4.0, item.TotalCount)
	assert.Equal(t, []float64{2, 2}, item.Quantities)
	assert.Equal(t, []string{"Pancakes"}, item.FromDishes)
	assert.Zero(t, item.ManualQuantity)
}

func TestGetAggregated_MergesDishesAndManual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	pancakes := f.mustDish(t, ctx, "Pancakes", []types.DishItem{{IngredientID: milk, Quantity: 2}})
	porridge := f.mustDish(t, ctx, "Porridge", []types.DishItem{{IngredientID: milk, Quantity: 1}})

	require.NoError(t, f.shopping.AddDish(ctx, testProfile, pancakes))
	require.NoError(t, f.shopping.AddDish(ctx, testProfile, porridge))
	require.NoError(t, f.shopping.AddManualIngredient(ctx, testProfile, milk, 0.5))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, 3.5, item.TotalCount)
	assert.Equal(t, []float64{2, 1}, item.Quantities)
	assert.Equal(t, []string{"Pancakes", "Porridge"}, item.FromDishes)
	assert.Equal(t, 0.5, item.ManualQuantity)
}

func TestGetAggregated_ManualQuantityZeroRemovesEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bread := f.mustIngredient(t, ctx, "Bread", "")
	require.NoError(t, f.shopping.AddManualIngredient(ctx, testProfile, bread, 3))
	require.NoError(t, f.shopping.SetManualIngredientQuantity(ctx, testProfile, bread, 0))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestGetAggregated_ExclusionAnnotatesWithoutRemoving(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	dish := f.mustDish(t, ctx, "Pancakes", []types.DishItem{{IngredientID: milk, Quantity: 2}})

	require.NoError(t, f.shopping.AddDish(ctx, testProfile, dish))
	require.NoError(t, f.shopping.ExcludeIngredient(ctx, testProfile, milk))
	require.NoError(t, f.shopping.CheckItem(ctx, testProfile, milk))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].IsExcluded)
	assert.True(t, view.Items[0].IsChecked)
	assert.Equal(t, 2.0, view.Items[0].TotalCount)
}

func TestGetAggregated_DanglingDishSkipped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	dish := f.mustDish(t, ctx, "Pancakes", []types.DishItem{{IngredientID: milk, Quantity: 2}})

	require.NoError(t, f.shopping.AddDish(ctx, testProfile, dish))
	require.NoError(t, f.dishes.RemoveDish(ctx, dish))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	assert.Empty(t, view.Items)
	require.Len(t, view.SelectedDishes, 1)
	assert.Nil(t, view.SelectedDishes[0].Dish)
	assert.Equal(t, 1, view.SelectedDishes[0].Count)
}

func TestGetAggregated_SortAndGroupByStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	grocer := f.mustStore(t, ctx, "Grocer")
	bakery := f.mustStore(t, ctx, "Bakery")

	// Grocer sorts before Bakery (creation order fixes sort order).
	apples := f.mustIngredient(t, ctx, "Apples", grocer)
	milk := f.mustIngredient(t, ctx, "Milk", grocer)
	bread := f.mustIngredient(t, ctx, "Bread", bakery)
	candles := f.mustIngredient(t, ctx, "Candles", "")

	dish := f.mustDish(t, ctx, "Shopping run", []types.DishItem{
		{IngredientID: bread, Quantity: 1},
		{IngredientID: milk, Quantity: 1},
		{IngredientID: apples, Quantity: 1},
		{IngredientID: candles, Quantity: 1},
	})
	require.NoError(t, f.shopping.AddDish(ctx, testProfile, dish))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	require.Len(t, view.Items, 4)
	names := make([]string, 0, 4)
	for _, item := range view.Items {
		names = append(names, item.Ingredient.Name)
	}
	// Grocer items first sorted by name, then Bakery, then no-store last.
	assert.Equal(t, []string{"Apples", "Milk", "Bread", "Candles"}, names)

	require.Len(t, view.ByStore, 3)
	assert.Equal(t, grocer, view.ByStore[0].Store.StoreID)
	assert.Len(t, view.ByStore[0].Items, 2)
	assert.Equal(t, bakery, view.ByStore[1].Store.StoreID)
	assert.Nil(t, view.ByStore[2].Store)
	assert.Equal(t, "Candles", view.ByStore[2].Items[0].Ingredient.Name)

	require.Len(t, view.Stores, 2)
	assert.Equal(t, "Grocer", view.Stores[0].Name)
}

func TestGetAggregated_MiscItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	grocer := f.mustStore(t, ctx, "Grocer")
	id, err := f.shopping.AddMiscItem(ctx, testProfile, "Batteries", grocer)
	require.NoError(t, err)
	require.NoError(t, f.shopping.ToggleMiscItem(ctx, testProfile, id))

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	require.Len(t, view.MiscItems, 1)
	misc := view.MiscItems[0]
	assert.Equal(t, "Batteries", misc.Name)
	assert.True(t, misc.Checked)
	require.NotNil(t, misc.Store)
	assert.Equal(t, "Grocer", misc.Store.Name)
	assert.Empty(t, view.Items)
}

func TestGetAggregated_EmptyProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.shopping.GetAggregated(ctx, testProfile)
	require.NoError(t, err)

	assert.Empty(t, view.Items)
	assert.Empty(t, view.SelectedDishes)
	assert.Empty(t, view.ByStore)
	assert.Empty(t, view.MiscItems)
}

func TestShoppingService_Clear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	dish := f.mustDish(t, ctx, "Pancakes", []types.DishItem{{IngredientID: milk, Quantity: 2}})

	require.NoError(t, f.shopping.AddDish(ctx, testProfile, dish))
	require.NoError(t, f.shopping.AddManualIngredient(ctx, testProfile, milk, 1))
	_, err := f.shopping.AddMiscItem(ctx, testProfile, "Batteries", "")
	require.NoError(t, err)

	require.NoError(t, f.shopping.Clear(ctx, testProfile))

	list, err := f.shopping.Get(ctx, testProfile)
	require.NoError(t, err)
	assert.Empty(t, list.SelectedDishes)
	assert.Empty(t, list.ManualIngredients)
	assert.Empty(t, list.MiscItems)
}

func TestShoppingService_GetWithoutDocument(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.shopping.Get(ctx, testProfile)
	require.NoError(t, err)
	assert.Equal(t, testProfile, list.ProfileID)
	assert.Empty(t, list.ListID)
	assert.Empty(t, list.SelectedDishes)
}

func TestShoppingService_AddManualIngredientRejectsZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	milk := f.mustIngredient(t, ctx, "Milk", "")
	err := f.shopping.AddManualIngredient(ctx, testProfile, milk, 0)
	assert.ErrorIs(t, err, types.ErrInvalidQuantity)
}
