package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDish_NormalizeItems(t *testing.T) {
	t.Run("merges duplicates summing quantities", func(t *testing.T) {
		d := Dish{Items: []DishItem{
			{IngredientID: "i1", Quantity: 1},
			{IngredientID: "i2", Quantity: 2},
			{IngredientID: "i1", Quantity: 0.5},
		}}
		d.NormalizeItems()

		require.Len(t, d.Items, 2)
		assert.Equal(t, DishItem{IngredientID: "i1", Quantity: 1.5}, d.Items[0])
		assert.Equal(t, DishItem{IngredientID: "i2", Quantity: 2}, d.Items[1])
	})

	t.Run("no-op without duplicates", func(t *testing.T) {
		d := Dish{Items: []DishItem{
			{IngredientID: "i1", Quantity: 1},
			{IngredientID: "i2", Quantity: 2},
		}}
		d.NormalizeItems()
		assert.Len(t, d.Items, 2)
	})
}

func TestDish_StripIngredient(t *testing.T) {
	d := Dish{Items: []DishItem{
		{IngredientID: "i1", Quantity: 1},
		{IngredientID: "i2", Quantity: 2},
	}}

	assert.True(t, d.StripIngredient("i1"))
	require.Len(t, d.Items, 1)
	assert.Equal(t, "i2", d.Items[0].IngredientID)

	assert.False(t, d.StripIngredient("i1"))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "milk", NameKey("  Milk "))
	assert.Equal(t, NameKey("FLOUR"), NameKey("flour"))
	assert.NotEqual(t, NameKey("milk"), NameKey("oat milk"))
}
