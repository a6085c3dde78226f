package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/larder/pkg/types"
)

type DishItemPayload struct {
	IngredientID string  `json:"ingredient_id" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
}

type CreateDishRequest struct {
	Name  string            `json:"name" validate:"required"`
	Items []DishItemPayload `json:"items" validate:"dive"`
}

type UpdateDishRequest struct {
	Name  string            `json:"name" validate:"required"`
	Items []DishItemPayload `json:"items" validate:"dive"`
}

func dishItems(payload []DishItemPayload) []types.DishItem {
	items := make([]types.DishItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, types.DishItem{IngredientID: p.IngredientID, Quantity: p.Quantity})
	}
	return items
}

func (s *Server) listDishesHandler(w http.ResponseWriter, r *http.Request) {
	dishes, err := s.dishes.ListDishes(r.Context(), chi.URLParam(r, "profile_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, dishes); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) listDishesDetailedHandler(w http.ResponseWriter, r *http.Request) {
	details, err := s.dishes.ListDishesWithIngredients(r.Context(), chi.URLParam(r, "profile_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, details); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) getDishHandler(w http.ResponseWriter, r *http.Request) {
	dish, err := s.dishes.GetDish(r.Context(), chi.URLParam(r, "dish_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, dish); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) createDishHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateDishRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	id, err := s.dishes.CreateDish(r.Context(), chi.URLParam(r, "profile_id"), req.Name, dishItems(req.Items))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusCreated, map[string]string{"dish_id": id}); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) updateDishHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateDishRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.dishes.UpdateDish(r.Context(), chi.URLParam(r, "dish_id"), req.Name, dishItems(req.Items)); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeDishHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.dishes.RemoveDish(r.Context(), chi.URLParam(r, "dish_id")); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
