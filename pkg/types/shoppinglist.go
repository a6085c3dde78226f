package types

import "time"

// SelectedDish records how many times a dish was added to the list.
// Entries with a non-positive count are never persisted.
type SelectedDish struct {
	DishID string `json:"dish_id"`
	Count  int    `json:"count"`
}

// ManualIngredient is an ingredient added directly to the list, independent
// of any dish. Quantity is always positive; dropping to zero removes the
// entry.
type ManualIngredient struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// MiscItem is a free-text list entry with no backing catalog ingredient.
type MiscItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StoreID string `json:"store_id,omitempty"`
	Checked bool   `json:"checked"`
}

// ShoppingList is the single per-profile list document. The excluded and
// checked fields are logical sets: no duplicates, membership toggles are
// idempotent.
type ShoppingList struct {
	ListID                string             `json:"list_id"`
	ProfileID             string             `json:"profile_id"`
	SelectedDishes        []SelectedDish     `json:"selected_dishes"`
	ManualIngredients     []ManualIngredient `json:"manual_ingredients"`
	ExcludedIngredientIDs []string           `json:"excluded_ingredient_ids"`
	CheckedIngredientIDs  []string           `json:"checked_ingredient_ids"`
	MiscItems             []MiscItem         `json:"misc_items"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// AddDish increments the dish's count, appending a new entry with count 1
// when the dish is not yet selected.
func (l *ShoppingList) AddDish(dishID string) {
	for i := range l.SelectedDishes {
		if l.SelectedDishes[i].DishID == dishID {
			l.SelectedDishes[i].Count++
			return
		}
	}
	l.SelectedDishes = append(l.SelectedDishes, SelectedDish{DishID: dishID, Count: 1})
}

// RemoveDish drops the dish from the selection entirely.
func (l *ShoppingList) RemoveDish(dishID string) {
	filtered := l.SelectedDishes[:0]
	for _, d := range l.SelectedDishes {
		if d.DishID != dishID {
			filtered = append(filtered, d)
		}
	}
	l.SelectedDishes = filtered
}

// SetDishCount upserts the dish's count. A count of zero or less removes
// the entry.
func (l *ShoppingList) SetDishCount(dishID string, count int) {
	if count <= 0 {
		l.RemoveDish(dishID)
		return
	}
	for i := range l.SelectedDishes {
		if l.SelectedDishes[i].DishID == dishID {
			l.SelectedDishes[i].Count = count
			return
		}
	}
	l.SelectedDishes = append(l.SelectedDishes, SelectedDish{DishID: dishID, Count: count})
}

// ExcludeIngredient marks the ingredient as already-on-hand. Idempotent.
func (l *ShoppingList) ExcludeIngredient(ingredientID string) {
	l.ExcludedIngredientIDs = addToSet(l.ExcludedIngredientIDs, ingredientID)
}

// IncludeIngredient undoes ExcludeIngredient. Idempotent.
func (l *ShoppingList) IncludeIngredient(ingredientID string) {
	l.ExcludedIngredientIDs = removeFromSet(l.ExcludedIngredientIDs, ingredientID)
}

// CheckItem marks the ingredient as bought. Idempotent.
func (l *ShoppingList) CheckItem(ingredientID string) {
	l.CheckedIngredientIDs = addToSet(l.CheckedIngredientIDs, ingredientID)
}

// UncheckItem clears the bought mark. Idempotent.
func (l *ShoppingList) UncheckItem(ingredientID string) {
	l.CheckedIngredientIDs = removeFromSet(l.CheckedIngredientIDs, ingredientID)
}

// ToggleItem flips the bought mark.
func (l *ShoppingList) ToggleItem(ingredientID string) {
	if contains(l.CheckedIngredientIDs, ingredientID) {
		l.UncheckItem(ingredientID)
	} else {
		l.CheckItem(ingredientID)
	}
}

// AddManualIngredient adds quantity to the ingredient's manual entry,
// creating it when absent. Quantity must be positive.
func (l *ShoppingList) AddManualIngredient(ingredientID string, quantity float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range l.ManualIngredients {
		if l.ManualIngredients[i].IngredientID == ingredientID {
			l.ManualIngredients[i].Quantity += quantity
			return nil
		}
	}
	l.ManualIngredients = append(l.ManualIngredients, ManualIngredient{
		IngredientID: ingredientID,
		Quantity:     quantity,
	})
	return nil
}

// SetManualIngredientQuantity overwrites the ingredient's manual quantity.
// A quantity of zero or less removes the entry; no zero-quantity entries
// persist.
func (l *ShoppingList) SetManualIngredientQuantity(ingredientID string, quantity float64) {
	if quantity <= 0 {
		l.RemoveManualIngredient(ingredientID)
		return
	}
	for i := range l.ManualIngredients {
		if l.ManualIngredients[i].IngredientID == ingredientID {
			l.ManualIngredients[i].Quantity = quantity
			return
		}
	}
	l.ManualIngredients = append(l.ManualIngredients, ManualIngredient{
		IngredientID: ingredientID,
		Quantity:     quantity,
	})
}

// RemoveManualIngredient drops the ingredient's manual entry.
func (l *ShoppingList) RemoveManualIngredient(ingredientID string) {
	filtered := l.ManualIngredients[:0]
	for _, m := range l.ManualIngredients {
		if m.IngredientID != ingredientID {
			filtered = append(filtered, m)
		}
	}
	l.ManualIngredients = filtered
}

// AddMiscItem appends a free-text entry. The caller supplies the generated
// opaque ID.
func (l *ShoppingList) AddMiscItem(id, name, storeID string) {
	l.MiscItems = append(l.MiscItems, MiscItem{ID: id, Name: name, StoreID: storeID})
}

// ToggleMiscItem flips the checked flag of the entry with the given ID.
// Returns false when no such entry exists.
func (l *ShoppingList) ToggleMiscItem(itemID string) bool {
	for i := range l.MiscItems {
		if l.MiscItems[i].ID == itemID {
			l.MiscItems[i].Checked = !l.MiscItems[i].Checked
			return true
		}
	}
	return false
}

// RemoveMiscItem drops the entry with the given ID.
func (l *ShoppingList) RemoveMiscItem(itemID string) {
	filtered := l.MiscItems[:0]
	for _, item := range l.MiscItems {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	l.MiscItems = filtered
}

// Clear resets the list to empty: selection, manual additions, exclusions,
// checks, and misc items.
func (l *ShoppingList) Clear() {
	l.SelectedDishes = nil
	l.ManualIngredients = nil
	l.ExcludedIngredientIDs = nil
	l.CheckedIngredientIDs = nil
	l.MiscItems = nil
}

// StripIngredient removes every trace of a deleted ingredient from the
// manual, excluded and checked overlays. Returns true if anything changed.
func (l *ShoppingList) StripIngredient(ingredientID string) bool {
	before := len(l.ManualIngredients) + len(l.ExcludedIngredientIDs) + len(l.CheckedIngredientIDs)
	l.RemoveManualIngredient(ingredientID)
	l.ExcludedIngredientIDs = removeFromSet(l.ExcludedIngredientIDs, ingredientID)
	l.CheckedIngredientIDs = removeFromSet(l.CheckedIngredientIDs, ingredientID)
	after := len(l.ManualIngredients) + len(l.ExcludedIngredientIDs) + len(l.CheckedIngredientIDs)
	return after != before
}

func contains(set []string, id string) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

func addToSet(set []string, id string) []string {
	if contains(set, id) {
		return set
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	filtered := set[:0]
	for _, s := range set {
		if s != id {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
