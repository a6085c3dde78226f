package types

import "time"

// DishItem is one ingredient requirement within a dish.
type DishItem struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// Dish is a named template of ingredient requirements, reusable across
// shopping-list sessions. Dish names are not unique.
type Dish struct {
	DishID    string     `json:"dish_id"`
	ProfileID string     `json:"profile_id"`
	Name      string     `json:"name"`
	Items     []DishItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NormalizeItems folds duplicate ingredient entries into one by summing
// their quantities, preserving first-appearance order. A dish holds at most
// one item per ingredient.
func (d *Dish) NormalizeItems() {
	if len(d.Items) < 2 {
		return
	}
	index := make(map[string]int, len(d.Items))
	merged := d.Items[:0]
	for _, item := range d.Items {
		if i, ok := index[item.IngredientID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.IngredientID] = len(merged)
		merged = append(merged, item)
	}
	d.Items = merged
}

// StripIngredient removes every item referencing the ingredient. Returns
// true if the item list changed.
func (d *Dish) StripIngredient(ingredientID string) bool {
	filtered := d.Items[:0]
	for _, item := range d.Items {
		if item.IngredientID != ingredientID {
			filtered = append(filtered, item)
		}
	}
	changed := len(filtered) != len(d.Items)
	d.Items = filtered
	return changed
}

// DishItemDetail is a dish item joined with its catalog ingredient.
// Ingredient is nil when the reference dangles; callers render that as an
// unknown ingredient rather than failing.
type DishItemDetail struct {
	DishItem
	Ingredient *Ingredient `json:"ingredient,omitempty"`
}

// DishDetail is a dish with its items joined against the ingredient catalog.
type DishDetail struct {
	Dish
	Items []DishItemDetail `json:"items"`
}
