// Package service implements the business operations over the repositories:
// catalog maintenance, dish templates, and the shopping list with its
// aggregation core.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/repo"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// imageURLExpiry bounds presigned store-image URLs.
const imageURLExpiry = 15 * time.Minute

// CatalogService owns stores and ingredients, including the cross-collection
// cascades triggered by deletes.
type CatalogService struct {
	stores      repo.StoreRepository
	ingredients repo.IngredientRepository
	dishes      repo.DishRepository
	lists       repo.ShoppingListRepository
	blobs       blob.Store
	logger      *zap.SugaredLogger
}

// NewCatalogService wires a catalog service.
func NewCatalogService(
	stores repo.StoreRepository,
	ingredients repo.IngredientRepository,
	dishes repo.DishRepository,
	lists repo.ShoppingListRepository,
	blobs blob.Store,
	logger *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		stores:      stores,
		ingredients: ingredients,
		dishes:      dishes,
		lists:       lists,
		blobs:       blobs,
		logger:      logger,
	}
}

// ListStores returns the profile's stores sorted by sort order, with a
// download URL attached for stores whose image driver supports presigning.
func (s *CatalogService) ListStores(ctx context.Context, profileID string) ([]*types.Store, error) {
	stores, err := s.stores.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for _, store := range stores {
		if store.ImageID == "" {
			continue
		}
		url, err := s.blobs.URL(ctx, store.ImageID, imageURLExpiry)
		if err != nil {
			if errors.Is(err, blob.ErrUnsupported) {
				continue // served through the images endpoint instead
			}
			s.logger.Errorw("presigning store image", "store_id", store.StoreID, "error", err)
			continue
		}
		store.ImageURL = url
	}
	return stores, nil
}

// GetStore retrieves one store by ID.
func (s *CatalogService) GetStore(ctx context.Context, id string) (*types.Store, error) {
	return s.stores.Get(ctx, id)
}

// CreateStore appends a store at the end of the display order: the new
// sort order is one past the current maximum, or 0 for the first store.
func (s *CatalogService) CreateStore(ctx context.Context, profileID, name, color, imageID string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", types.ErrInvalidName
	}
	existing, err := s.stores.List(ctx, profileID)
	if err != nil {
		return "", err
	}
	maxOrder := -1
	for _, store := range existing {
		if store.SortOrder > maxOrder {
			maxOrder = store.SortOrder
		}
	}
	return s.stores.Create(ctx, &types.Store{
		ProfileID: profileID,
		Name:      name,
		SortOrder: maxOrder + 1,
		Color:     color,
		ImageID:   imageID,
	})
}

// UpdateStore overwrites name, color and image reference. It does not
// release a replaced image; UpdateStoreImage owns that cleanup.
func (s *CatalogService) UpdateStore(ctx context.Context, id, name, color, imageID string) error {
	if strings.TrimSpace(name) == "" {
		return types.ErrInvalidName
	}
	store, err := s.stores.Get(ctx, id)
	if err != nil {
		return err
	}
	store.Name = name
	store.Color = color
	store.ImageID = imageID
	return s.stores.Update(ctx, store)
}

// UpdateStoreColor patches only the color.
func (s *CatalogService) UpdateStoreColor(ctx context.Context, id, color string) error {
	store, err := s.stores.Get(ctx, id)
	if err != nil {
		return err
	}
	store.Color = color
	return s.stores.Update(ctx, store)
}

// UpdateStoreImage attaches a new image, releasing the previously attached
// blob so replaced images do not orphan.
func (s *CatalogService) UpdateStoreImage(ctx context.Context, id, imageID string) error {
	store, err := s.stores.Get(ctx, id)
	if err != nil {
		return err
	}
	if store.ImageID != "" && store.ImageID != imageID {
		if _, err := s.blobs.Delete(ctx, store.ImageID); err != nil {
			s.logger.Errorw("deleting replaced store image", "store_id", id, "image_id", store.ImageID, "error", err)
		}
	}
	store.ImageID = imageID
	return s.stores.Update(ctx, store)
}

// RemoveStoreImage detaches and deletes the store's image, if any.
func (s *CatalogService) RemoveStoreImage(ctx context.Context, id string) error {
	store, err := s.stores.Get(ctx, id)
	if err != nil {
		return err
	}
	if store.ImageID == "" {
		return nil
	}
	if _, err := s.blobs.Delete(ctx, store.ImageID); err != nil {
		s.logger.Errorw("deleting store image", "store_id", id, "image_id", store.ImageID, "error", err)
	}
	store.ImageID = ""
	return s.stores.Update(ctx, store)
}

// RemoveStore deletes a store: its image blob is released, ingredients
// referencing it are detached (cascade-null, not cascade-delete), and the
// record is removed last so a crash mid-cascade cannot leave a deleted
// store referenced.
func (s *CatalogService) RemoveStore(ctx context.Context, profileID, id string) error {
	store, err := s.stores.Get(ctx, id)
	if err != nil {
		return err
	}
	if store.ImageID != "" {
		if _, err := s.blobs.Delete(ctx, store.ImageID); err != nil {
			s.logger.Errorw("deleting store image", "store_id", id, "image_id", store.ImageID, "error", err)
		}
	}
	cleared, err := s.ingredients.ClearStore(ctx, profileID, id)
	if err != nil {
		return fmt.Errorf("detaching ingredients: %w", err)
	}
	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("store removed", "store_id", id, "ingredients_detached", cleared)
	return nil
}

// ReorderStores rewrites each listed store's sort order to its index in
// orderedIDs. Stores omitted from the list keep their old order, which can
// leave overlapping values; callers are expected to pass the complete set.
func (s *CatalogService) ReorderStores(ctx context.Context, profileID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		store, err := s.stores.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("reordering store %s: %w", id, err)
		}
		if store.ProfileID != profileID {
			return fmt.Errorf("reordering store %s: %w", id, types.ErrNotFound)
		}
		if store.SortOrder == i {
			continue
		}
		store.SortOrder = i
		if err := s.stores.Update(ctx, store); err != nil {
			return fmt.Errorf("reordering store %s: %w", id, err)
		}
	}
	return nil
}

// ListIngredients returns all ingredients of the profile.
func (s *CatalogService) ListIngredients(ctx context.Context, profileID string) ([]*types.Ingredient, error) {
	return s.ingredients.List(ctx, profileID)
}

// SearchIngredients filters by case-insensitive substring match on the
// name. An empty query returns everything.
func (s *CatalogService) SearchIngredients(ctx context.Context, profileID, query string) ([]*types.Ingredient, error) {
	all, err := s.ingredients.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}
	lower := strings.ToLower(query)
	matched := all[:0]
	for _, ing := range all {
		if strings.Contains(strings.ToLower(ing.Name), lower) {
			matched = append(matched, ing)
		}
	}
	return matched, nil
}

// GetIngredient retrieves one ingredient by ID.
func (s *CatalogService) GetIngredient(ctx context.Context, id string) (*types.Ingredient, error) {
	return s.ingredients.Get(ctx, id)
}

// CreateIngredient stores a new ingredient with a trimmed name. The write
// is rejected with ErrDuplicateName when another ingredient of the profile
// has the same name under trimmed, case-insensitive comparison.
func (s *CatalogService) CreateIngredient(ctx context.Context, profileID, name, storeID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", types.ErrInvalidName
	}
	if err := s.checkDuplicateName(ctx, profileID, trimmed, ""); err != nil {
		return "", err
	}
	return s.ingredients.Create(ctx, &types.Ingredient{
		ProfileID: profileID,
		Name:      trimmed,
		StoreID:   storeID,
	})
}

// UpdateIngredient renames or re-assigns an ingredient, applying the same
// duplicate check as CreateIngredient but excluding the ingredient itself.
func (s *CatalogService) UpdateIngredient(ctx context.Context, profileID, id, name, storeID string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return types.ErrInvalidName
	}
	if err := s.checkDuplicateName(ctx, profileID, trimmed, id); err != nil {
		return err
	}
	ing, err := s.ingredients.Get(ctx, id)
	if err != nil {
		return err
	}
	ing.Name = trimmed
	ing.StoreID = storeID
	return s.ingredients.Update(ctx, ing)
}

// RemoveIngredient deletes an ingredient: it is stripped from every dish
// that uses it and from the shopping list's manual/excluded/checked
// overlays, then the record is removed. All cascade writes complete before
// the delete; a concurrent reader may still observe the intermediate state
// since nothing here runs in a transaction.
func (s *CatalogService) RemoveIngredient(ctx context.Context, profileID, id string) error {
	if _, err := s.ingredients.Get(ctx, id); err != nil {
		return err
	}

	dishes, err := s.dishes.List(ctx, profileID)
	if err != nil {
		return fmt.Errorf("loading dishes: %w", err)
	}
	patched := 0
	for _, dish := range dishes {
		if dish.StripIngredient(id) {
			if err := s.dishes.Update(ctx, dish); err != nil {
				return fmt.Errorf("stripping ingredient from dish %s: %w", dish.DishID, err)
			}
			patched++
		}
	}

	list, err := s.lists.Find(ctx, profileID)
	switch {
	case errors.Is(err, types.ErrNotFound):
		// No list document yet, nothing to strip.
	case err != nil:
		return fmt.Errorf("loading shopping list: %w", err)
	default:
		if list.StripIngredient(id) {
			if err := s.lists.Save(ctx, list); err != nil {
				return fmt.Errorf("stripping ingredient from shopping list: %w", err)
			}
		}
	}

	if err := s.ingredients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("ingredient removed", "ingredient_id", id, "dishes_patched", patched)
	return nil
}

// checkDuplicateName rejects a name already used by another ingredient of
// the profile. excludeID skips the ingredient being updated.
func (s *CatalogService) checkDuplicateName(ctx context.Context, profileID, name, excludeID string) error {
	existing, err := s.ingredients.List(ctx, profileID)
	if err != nil {
		return err
	}
	key := types.NameKey(name)
	for _, ing := range existing {
		if ing.IngredientID != excludeID && types.NameKey(ing.Name) == key {
			return fmt.Errorf("ingredient %q: %w", ing.Name, types.ErrDuplicateName)
		}
	}
	return nil
}
