package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AddListDishRequest struct {
	DishID string `json:"dish_id" validate:"required"`
}

type SetDishCountRequest struct {
	Count int `json:"count"`
}

type AddManualIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
}

type SetManualQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

type AddMiscItemRequest struct {
	Name    string `json:"name" validate:"required"`
	StoreID string `json:"store_id"`
}

func (s *Server) getShoppingListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.shopping.Get(r.Context(), chi.URLParam(r, "profile_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, list); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) getAggregatedListHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.shopping.GetAggregated(r.Context(), chi.URLParam(r, "profile_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, view); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) clearShoppingListHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.shopping.Clear(r.Context(), chi.URLParam(r, "profile_id")); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addListDishHandler(w http.ResponseWriter, r *http.Request) {
	var req AddListDishRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.shopping.AddDish(r.Context(), chi.URLParam(r, "profile_id"), req.DishID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setListDishCountHandler(w http.ResponseWriter, r *http.Request) {
	var req SetDishCountRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.shopping.SetDishCount(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "dish_id"), req.Count)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeListDishHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.RemoveDish(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "dish_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addManualIngredientHandler(w http.ResponseWriter, r *http.Request) {
	var req AddManualIngredientRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.shopping.AddManualIngredient(r.Context(), chi.URLParam(r, "profile_id"), req.IngredientID, req.Quantity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setManualQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req SetManualQuantityRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.shopping.SetManualIngredientQuantity(
		r.Context(),
		chi.URLParam(r, "profile_id"),
		chi.URLParam(r, "ingredient_id"),
		req.Quantity,
	)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeManualIngredientHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.RemoveManualIngredient(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) excludeIngredientHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.ExcludeIngredient(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) includeIngredientHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.IncludeIngredient(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkItemHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.CheckItem(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uncheckItemHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.UncheckItem(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleItemHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.ToggleItem(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addMiscItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddMiscItemRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	id, err := s.shopping.AddMiscItem(r.Context(), chi.URLParam(r, "profile_id"), req.Name, req.StoreID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusCreated, map[string]string{"item_id": id}); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) toggleMiscItemHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.ToggleMiscItem(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "item_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeMiscItemHandler(w http.ResponseWriter, r *http.Request) {
	err := s.shopping.RemoveMiscItem(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "item_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
