package types

import "time"

// Store represents a shop where ingredients are bought. SortOrder controls
// display and grouping order; new stores are appended after existing ones.
type Store struct {
	StoreID   string    `json:"store_id"`
	ProfileID string    `json:"profile_id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Color     string    `json:"color,omitempty"`     // hex color for store branding
	ImageID   string    `json:"image_id,omitempty"`  // blob key of the store image
	ImageURL  string    `json:"image_url,omitempty"` // resolved on read, not persisted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
