package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/repo"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// ShoppingService manages the profile's single shopping list. Every
// mutation follows the same shape: materialize the list document, apply
// the change in memory, save the whole document back.
type ShoppingService struct {
	lists       repo.ShoppingListRepository
	dishes      repo.DishRepository
	ingredients repo.IngredientRepository
	stores      repo.StoreRepository
	logger      *zap.SugaredLogger
}

// NewShoppingService wires a shopping list service.
func NewShoppingService(
	lists repo.ShoppingListRepository,
	dishes repo.DishRepository,
	ingredients repo.IngredientRepository,
	stores repo.StoreRepository,
	logger *zap.SugaredLogger,
) *ShoppingService {
	return &ShoppingService{
		lists:       lists,
		dishes:      dishes,
		ingredients: ingredients,
		stores:      stores,
		logger:      logger,
	}
}

// Get returns the profile's list. When no document exists yet the result is
// an empty list for the profile; reads never create the document.
func (s *ShoppingService) Get(ctx context.Context, profileID string) (*types.ShoppingList, error) {
	list, err := s.lists.Find(ctx, profileID)
	if errors.Is(err, types.ErrNotFound) {
		return &types.ShoppingList{ProfileID: profileID}, nil
	}
	return list, err
}

// mutate materializes the list document, applies fn, and saves the result.
// fn returning an error aborts without saving.
func (s *ShoppingService) mutate(ctx context.Context, profileID string, fn func(*types.ShoppingList) error) error {
	list, err := s.lists.FindOrCreate(ctx, profileID)
	if err != nil {
		return err
	}
	if err := fn(list); err != nil {
		return err
	}
	return s.lists.Save(ctx, list)
}

// AddDish increments the dish's selection count by one.
func (s *ShoppingService) AddDish(ctx context.Context, profileID, dishID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.AddDish(dishID)
		return nil
	})
}

// RemoveDish drops the dish selection entirely, regardless of count.
func (s *ShoppingService) RemoveDish(ctx context.Context, profileID, dishID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.RemoveDish(dishID)
		return nil
	})
}

// SetDishCount sets the selection count; zero or negative removes the entry.
func (s *ShoppingService) SetDishCount(ctx context.Context, profileID, dishID string, count int) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.SetDishCount(dishID, count)
		return nil
	})
}

// AddManualIngredient adds quantity to the ingredient's manual entry,
// creating it when absent. Non-positive quantities are rejected.
func (s *ShoppingService) AddManualIngredient(ctx context.Context, profileID, ingredientID string, quantity float64) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		return list.AddManualIngredient(ingredientID, quantity)
	})
}

// SetManualIngredientQuantity overwrites the manual quantity; zero or
// negative removes the entry.
func (s *ShoppingService) SetManualIngredientQuantity(ctx context.Context, profileID, ingredientID string, quantity float64) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.SetManualIngredientQuantity(ingredientID, quantity)
		return nil
	})
}

// RemoveManualIngredient drops the manual entry.
func (s *ShoppingService) RemoveManualIngredient(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.RemoveManualIngredient(ingredientID)
		return nil
	})
}

// ExcludeIngredient hides the ingredient from the aggregated view without
// touching the dishes that pull it in.
func (s *ShoppingService) ExcludeIngredient(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.ExcludeIngredient(ingredientID)
		return nil
	})
}

// IncludeIngredient undoes ExcludeIngredient.
func (s *ShoppingService) IncludeIngredient(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.IncludeIngredient(ingredientID)
		return nil
	})
}

// CheckItem marks the ingredient as picked up.
func (s *ShoppingService) CheckItem(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.CheckItem(ingredientID)
		return nil
	})
}

// UncheckItem clears the picked-up mark.
func (s *ShoppingService) UncheckItem(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.UncheckItem(ingredientID)
		return nil
	})
}

// ToggleItem flips the picked-up mark.
func (s *ShoppingService) ToggleItem(ctx context.Context, profileID, ingredientID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.ToggleItem(ingredientID)
		return nil
	})
}

// AddMiscItem appends a free-text line item and returns its generated ID.
// Misc items live only on the list and never join the ingredient catalog.
func (s *ShoppingService) AddMiscItem(ctx context.Context, profileID, name, storeID string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", types.ErrInvalidName
	}
	id := newMiscID()
	err := s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.AddMiscItem(id, name, storeID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ToggleMiscItem flips the checked flag of a misc item. Unknown IDs are a
// no-op.
func (s *ShoppingService) ToggleMiscItem(ctx context.Context, profileID, miscID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.ToggleMiscItem(miscID)
		return nil
	})
}

// RemoveMiscItem drops the misc item.
func (s *ShoppingService) RemoveMiscItem(ctx context.Context, profileID, miscID string) error {
	return s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.RemoveMiscItem(miscID)
		return nil
	})
}

// Clear resets the whole list: dish selections, manual entries, exclusion
// and checked marks, and misc items.
func (s *ShoppingService) Clear(ctx context.Context, profileID string) error {
	err := s.mutate(ctx, profileID, func(list *types.ShoppingList) error {
		list.Clear()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Infow("shopping list cleared", "profile_id", profileID)
	return nil
}

func newMiscID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
