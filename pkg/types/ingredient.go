package types

import (
	"strings"
	"time"
)

// Ingredient is a catalog entry with an optional default store. Names are
// stored trimmed and must be unique per profile under NameKey comparison.
type Ingredient struct {
	IngredientID string    `json:"ingredient_id"`
	ProfileID    string    `json:"profile_id"`
	Name         string    `json:"name"`
	StoreID      string    `json:"store_id,omitempty"` // empty when no default store
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NameKey returns the normalized form of an ingredient name used for
// duplicate detection: trimmed and lowercased.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
