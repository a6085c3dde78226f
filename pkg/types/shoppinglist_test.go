package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingList_Dishes(t *testing.T) {
	t.Run("add increments count", func(t *testing.T) {
		var l ShoppingList
		l.AddDish("d1")
		l.AddDish("d1")
		l.AddDish("d2")

		require.Len(t, l.SelectedDishes, 2)
		assert.Equal(t, SelectedDish{DishID: "d1", Count: 2}, l.SelectedDishes[0])
		assert.Equal(t, SelectedDish{DishID: "d2", Count: 1}, l.SelectedDishes[1])
	})

	t.Run("remove drops entry regardless of count", func(t *testing.T) {
		var l ShoppingList
		l.AddDish("d1")
		l.AddDish("d1")
		l.RemoveDish("d1")

		assert.Empty(t, l.SelectedDishes)
	})

	t.Run("set count upserts", func(t *testing.T) {
		var l ShoppingList
		l.SetDishCount("d1", 3)
		require.Len(t, l.SelectedDishes, 1)
		assert.Equal(t, 3, l.SelectedDishes[0].Count)

		l.SetDishCount("d1", 5)
		require.Len(t, l.SelectedDishes, 1)
		assert.Equal(t, 5, l.SelectedDishes[0].Count)
	})

	t.Run("set count zero removes entry", func(t *testing.T) {
		var l ShoppingList
		l.AddDish("d1")
		l.SetDishCount("d1", 0)
		assert.Empty(t, l.SelectedDishes)

		l.SetDishCount("d1", -2)
		assert.Empty(t, l.SelectedDishes)
	})
}

func TestShoppingList_ManualIngredients(t *testing.T) {
	t.Run("add accumulates quantity", func(t *testing.T) {
		var l ShoppingList
		require.NoError(t, l.AddManualIngredient("i1", 2))
		require.NoError(t, l.AddManualIngredient("i1", 1.5))

		require.Len(t, l.ManualIngredients, 1)
		assert.Equal(t, 3.5, l.ManualIngredients[0].Quantity)
	})

	t.Run("add rejects non-positive quantity", func(t *testing.T) {
		var l ShoppingList
		assert.ErrorIs(t, l.AddManualIngredient("i1", 0), ErrInvalidQuantity)
		assert.ErrorIs(t, l.AddManualIngredient("i1", -1), ErrInvalidQuantity)
		assert.Empty(t, l.ManualIngredients)
	})

	t.Run("set quantity overwrites", func(t *testing.T) {
		var l ShoppingList
		require.NoError(t, l.AddManualIngredient("i1", 2))
		l.SetManualIngredientQuantity("i1", 7)

		require.Len(t, l.ManualIngredients, 1)
		assert.Equal(t, 7.0, l.ManualIngredients[0].Quantity)
	})

	t.Run("set quantity zero removes entry", func(t *testing.T) {
		var l ShoppingList
		require.NoError(t, l.AddManualIngredient("i1", 3))
		l.SetManualIngredientQuantity("i1", 0)
		assert.Empty(t, l.ManualIngredients)
	})

	t.Run("set quantity on absent entry inserts", func(t *testing.T) {
		var l ShoppingList
		l.SetManualIngredientQuantity("i1", 4)
		require.Len(t, l.ManualIngredients, 1)
		assert.Equal(t, 4.0, l.ManualIngredients[0].Quantity)
	})
}

func TestShoppingList_Sets(t *testing.T) {
	t.Run("exclude is idempotent", func(t *testing.T) {
		var l ShoppingList
		l.ExcludeIngredient("i1")
		l.ExcludeIngredient("i1")
		assert.Equal(t, []string{"i1"}, l.ExcludedIngredientIDs)

		l.IncludeIngredient("i1")
		l.IncludeIngredient("i1")
		assert.Empty(t, l.ExcludedIngredientIDs)
	})

	t.Run("check and uncheck are idempotent", func(t *testing.T) {
		var l ShoppingList
		l.CheckItem("i1")
		l.CheckItem("i1")
		assert.Equal(t, []string{"i1"}, l.CheckedIngredientIDs)

		l.UncheckItem("i1")
		l.UncheckItem("i1")
		assert.Empty(t, l.CheckedIngredientIDs)
	})

	t.Run("toggle flips membership", func(t *testing.T) {
		var l ShoppingList
		l.ToggleItem("i1")
		assert.Equal(t, []string{"i1"}, l.CheckedIngredientIDs)
		l.ToggleItem("i1")
		assert.Empty(t, l.CheckedIngredientIDs)
	})
}

func TestShoppingList_MiscItems(t *testing.T) {
	t.Run("add and toggle", func(t *testing.T) {
		var l ShoppingList
		l.AddMiscItem("m1", "Batteries", "s1")

		require.Len(t, l.MiscItems, 1)
		assert.False(t, l.MiscItems[0].Checked)

		assert.True(t, l.ToggleMiscItem("m1"))
		assert.True(t, l.MiscItems[0].Checked)
		assert.True(t, l.ToggleMiscItem("m1"))
		assert.False(t, l.MiscItems[0].Checked)
	})

	t.Run("toggle unknown id returns false", func(t *testing.T) {
		var l ShoppingList
		assert.False(t, l.ToggleMiscItem("nope"))
	})

	t.Run("remove", func(t *testing.T) {
		var l ShoppingList
		l.AddMiscItem("m1", "Batteries", "")
		l.AddMiscItem("m2", "Napkins", "")
		l.RemoveMiscItem("m1")

		require.Len(t, l.MiscItems, 1)
		assert.Equal(t, "m2", l.MiscItems[0].ID)
	})
}

func TestShoppingList_Clear(t *testing.T) {
	var l ShoppingList
	l.AddDish("d1")
	require.NoError(t, l.AddManualIngredient("i1", 2))
	l.ExcludeIngredient("i2")
	l.CheckItem("i3")
	l.AddMiscItem("m1", "Batteries", "")

	l.Clear()

	assert.Empty(t, l.SelectedDishes)
	assert.Empty(t, l.ManualIngredients)
	assert.Empty(t, l.ExcludedIngredientIDs)
	assert.Empty(t, l.CheckedIngredientIDs)
	assert.Empty(t, l.MiscItems)
}

func TestShoppingList_StripIngredient(t *testing.T) {
	var l ShoppingList
	require.NoError(t, l.AddManualIngredient("i1", 2))
	l.ExcludeIngredient("i1")
	l.CheckItem("i1")
	l.CheckItem("i2")

	assert.True(t, l.StripIngredient("i1"))
	assert.Empty(t, l.ManualIngredients)
	assert.Empty(t, l.ExcludedIngredientIDs)
	assert.Equal(t, []string{"i2"}, l.CheckedIngredientIDs)

	assert.False(t, l.StripIngredient("i1"))
}
