package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// unassignedStoreOrder sorts ingredients without a store after every real
// store, which all carry small non-negative sort orders.
const unassignedStoreOrder = math.MaxInt32

// GetAggregated builds the derived shopping view: one entry per distinct
// ingredient pulled in by the selected dishes and manual additions.
//
// TotalCount is quantity-weighted: a dish selected count times contributes
// item quantity times count, and manual quantity is added on top. The
// quantities log records the per-unit quantity once per dish copy. Dangling
// references (a selected dish or referenced ingredient that was deleted)
// are skipped, never an error. Exclusion and checked marks annotate entries
// but do not remove them.
func (s *ShoppingService) GetAggregated(ctx context.Context, profileID string) (*types.AggregatedList, error) {
	list, err := s.lists.Find(ctx, profileID)
	if errors.Is(err, types.ErrNotFound) {
		list = &types.ShoppingList{ProfileID: profileID}
	} else if err != nil {
		return nil, err
	}

	dishes, err := s.dishes.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List(ctx, profileID)
	if err != nil {
		return nil, err
	}

	dishByID := make(map[string]*types.Dish, len(dishes))
	for _, d := range dishes {
		dishByID[d.DishID] = d
	}
	ingredientByID := make(map[string]*types.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.IngredientID] = ing
	}
	storeByID := make(map[string]*types.Store, len(stores))
	for _, st := range stores {
		storeByID[st.StoreID] = st
	}

	itemByIngredient := make(map[string]*types.AggregatedItem)
	var items []*types.AggregatedItem
	bucket := func(ingredientID string) *types.AggregatedItem {
		if item, ok := itemByIngredient[ingredientID]; ok {
			return item
		}
		item := &types.AggregatedItem{IngredientID: ingredientID}
		itemByIngredient[ingredientID] = item
		items = append(items, item)
		return item
	}

	selected := make([]types.SelectedDishView, 0, len(list.SelectedDishes))
	for _, sd := range list.SelectedDishes {
		dish := dishByID[sd.DishID]
		selected = append(selected, types.SelectedDishView{Dish: dish, Count: sd.Count})
		if dish == nil {
			continue
		}
		for _, di := range dish.Items {
			if _, ok := ingredientByID[di.IngredientID]; !ok {
				continue
			}
			item := bucket(di.IngredientID)
			item.TotalCount += di.Quantity * float64(sd.Count)
			for i := 0; i < sd.Count; i++ {
				item.Quantities = append(item.Quantities, di.Quantity)
			}
			if !containsString(item.FromDishes, dish.Name) {
				item.FromDishes = append(item.FromDishes, dish.Name)
			}
		}
	}

	for _, m := range list.ManualIngredients {
		if _, ok := ingredientByID[m.IngredientID]; !ok {
			continue
		}
		item := bucket(m.IngredientID)
		item.TotalCount += m.Quantity
		item.ManualQuantity += m.Quantity
	}

	for _, item := range items {
		ing := ingredientByID[item.IngredientID]
		item.Ingredient = ing
		if ing.StoreID != "" {
			item.Store = storeByID[ing.StoreID]
		}
		item.IsExcluded = containsString(list.ExcludedIngredientIDs, item.IngredientID)
		item.IsChecked = containsString(list.CheckedIngredientIDs, item.IngredientID)
	}

	sortItems(items)

	return &types.AggregatedList{
		SelectedDishes: selected,
		Items:          items,
		ByStore:        groupByStore(items),
		MiscItems:      miscViews(list.MiscItems, storeByID),
		Stores:         stores,
	}, nil
}

// sortItems orders by the store's sort order first, no-store entries last,
// then by ingredient name using locale-aware collation.
func sortItems(items []*types.AggregatedItem) {
	coll := collate.New(language.Und)
	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := storeOrder(items[i]), storeOrder(items[j])
		if oi != oj {
			return oi < oj
		}
		return coll.CompareString(items[i].Ingredient.Name, items[j].Ingredient.Name) < 0
	})
}

func storeOrder(item *types.AggregatedItem) int {
	if item.Store == nil {
		return unassignedStoreOrder
	}
	return item.Store.SortOrder
}

// groupByStore partitions sorted items into store groups, keeping the sorted
// order inside each group and ordering groups by first appearance.
func groupByStore(items []*types.AggregatedItem) []types.StoreGroup {
	groups := make([]types.StoreGroup, 0)
	index := make(map[string]int)
	for _, item := range items {
		key := ""
		if item.Store != nil {
			key = item.Store.StoreID
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, types.StoreGroup{Store: item.Store})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func miscViews(misc []types.MiscItem, storeByID map[string]*types.Store) []types.MiscItemView {
	views := make([]types.MiscItemView, 0, len(misc))
	for _, item := range misc {
		view := types.MiscItemView{MiscItem: item}
		if item.StoreID != "" {
			view.Store = storeByID[item.StoreID]
		}
		views = append(views, view)
	}
	return views
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
