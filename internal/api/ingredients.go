package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CreateIngredientRequest struct {
	Name    string `json:"name" validate:"required"`
	StoreID string `json:"store_id"`
}

type UpdateIngredientRequest struct {
	Name    string `json:"name" validate:"required"`
	StoreID string `json:"store_id"`
}

func (s *Server) listIngredientsHandler(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	query := r.URL.Query().Get("query")

	ingredients, err := s.catalog.SearchIngredients(r.Context(), profileID, query)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, ingredients); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) createIngredientHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateIngredientRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	id, err := s.catalog.CreateIngredient(r.Context(), chi.URLParam(r, "profile_id"), req.Name, req.StoreID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusCreated, map[string]string{"ingredient_id": id}); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) updateIngredientHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateIngredientRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	err := s.catalog.UpdateIngredient(
		r.Context(),
		chi.URLParam(r, "profile_id"),
		chi.URLParam(r, "ingredient_id"),
		req.Name,
		req.StoreID,
	)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeIngredientHandler(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.RemoveIngredient(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
