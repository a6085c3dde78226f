package types

// AggregatedItem is the merged view of one ingredient across all selected
// dishes plus manual additions. TotalCount is the quantity-weighted total:
// each dish contributes item quantity times dish count, and the manual
// quantity is folded in on top. Quantities logs the per-unit amounts, one
// entry per dish copy, for display purposes.
type AggregatedItem struct {
	IngredientID   string      `json:"ingredient_id"`
	Ingredient     *Ingredient `json:"ingredient"`
	TotalCount     float64     `json:"total_count"`
	Quantities     []float64   `json:"quantities"`
	FromDishes     []string    `json:"from_dishes"`
	ManualQuantity float64     `json:"manual_quantity,omitempty"`
	Store          *Store      `json:"store,omitempty"`
	IsExcluded     bool        `json:"is_excluded"`
	IsChecked      bool        `json:"is_checked"`
}

// StoreGroup partitions aggregated items by store. Store is nil for the
// group of items whose ingredient has no store.
type StoreGroup struct {
	Store *Store            `json:"store,omitempty"`
	Items []*AggregatedItem `json:"items"`
}

// SelectedDishView is a selection entry with the dish resolved. Dish is nil
// when the reference dangles.
type SelectedDishView struct {
	Dish  *Dish `json:"dish,omitempty"`
	Count int   `json:"count"`
}

// MiscItemView is a misc item with its store resolved. Misc items stay a
// parallel list; they are never merged into the ingredient aggregation.
type MiscItemView struct {
	MiscItem
	Store *Store `json:"store,omitempty"`
}

// AggregatedList is the derived, read-only view of the shopping list.
type AggregatedList struct {
	SelectedDishes []SelectedDishView `json:"selected_dishes"`
	Items          []*AggregatedItem  `json:"items"`
	ByStore        []StoreGroup       `json:"by_store"`
	MiscItems      []MiscItemView     `json:"misc_items"`
	Stores         []*Store           `json:"stores"`
}
