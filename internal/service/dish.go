package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/repo"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// DishService manages dish templates.
type DishService struct {
	dishes      repo.DishRepository
	ingredients repo.IngredientRepository
	logger      *zap.SugaredLogger
}

// NewDishService wires a dish service.
func NewDishService(dishes repo.DishRepository, ingredients repo.IngredientRepository, logger *zap.SugaredLogger) *DishService {
	return &DishService{dishes: dishes, ingredients: ingredients, logger: logger}
}

// ListDishes returns all dishes of the profile.
func (s *DishService) ListDishes(ctx context.Context, profileID string) ([]*types.Dish, error) {
	return s.dishes.List(ctx, profileID)
}

// GetDish retrieves one dish by ID.
func (s *DishService) GetDish(ctx context.Context, id string) (*types.Dish, error) {
	return s.dishes.Get(ctx, id)
}

// ListDishesWithIngredients returns every dish with its item rows joined to
// the ingredient records. Items whose ingredient no longer exists carry a
// nil Ingredient rather than being dropped.
func (s *DishService) ListDishesWithIngredients(ctx context.Context, profileID string) ([]*types.DishDetail, error) {
	dishes, err := s.dishes.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*types.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.IngredientID] = ing
	}

	details := make([]*types.DishDetail, 0, len(dishes))
	for _, dish := range dishes {
		detail := &types.DishDetail{Dish: *dish, Items: make([]types.DishItemDetail, 0, len(dish.Items))}
		for _, item := range dish.Items {
			detail.Items = append(detail.Items, types.DishItemDetail{
				DishItem:   item,
				Ingredient: byID[item.IngredientID],
			})
		}
		details = append(details, detail)
	}
	return details, nil
}

// CreateDish stores a new dish. Items referencing the same ingredient more
// than once are merged with their quantities summed; a non-positive
// quantity after merging rejects the write.
func (s *DishService) CreateDish(ctx context.Context, profileID, name string, items []types.DishItem) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", types.ErrInvalidName
	}
	dish := &types.Dish{ProfileID: profileID, Name: name, Items: items}
	dish.NormalizeItems()
	if err := validateItems(dish.Items); err != nil {
		return "", err
	}
	return s.dishes.Create(ctx, dish)
}

// UpdateDish overwrites name and items with the same normalization and
// validation as CreateDish.
func (s *DishService) UpdateDish(ctx context.Context, id, name string, items []types.DishItem) error {
	if strings.TrimSpace(name) == "" {
		return types.ErrInvalidName
	}
	dish, err := s.dishes.Get(ctx, id)
	if err != nil {
		return err
	}
	dish.Name = name
	dish.Items = items
	dish.NormalizeItems()
	if err := validateItems(dish.Items); err != nil {
		return err
	}
	return s.dishes.Update(ctx, dish)
}

// RemoveDish deletes the dish. Shopping list selections referencing it are
// left in place and skipped during aggregation.
func (s *DishService) RemoveDish(ctx context.Context, id string) error {
	return s.dishes.Delete(ctx, id)
}

func validateItems(items []types.DishItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return types.ErrInvalidQuantity
		}
	}
	return nil
}
