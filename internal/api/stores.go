package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
	ImageID string `json:"image_id"`
}

type UpdateStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
	ImageID string `json:"image_id"`
}

type UpdateStoreColorRequest struct {
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateStoreImageRequest struct {
	ImageID string `json:"image_id" validate:"required"`
}

type ReorderStoresRequest struct {
	StoreIDs []string `json:"store_ids" validate:"required,min=1,dive,required"`
}

func (s *Server) listStoresHandler(w http.ResponseWriter, r *http.Request) {
	stores, err := s.catalog.ListStores(r.Context(), chi.URLParam(r, "profile_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, stores); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) getStoreHandler(w http.ResponseWriter, r *http.Request) {
	store, err := s.catalog.GetStore(r.Context(), chi.URLParam(r, "store_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusOK, store); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) createStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	id, err := s.catalog.CreateStore(r.Context(), chi.URLParam(r, "profile_id"), req.Name, req.Color, req.ImageID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := writeJson(w, http.StatusCreated, map[string]string{"store_id": id}); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) updateStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateStoreRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.catalog.UpdateStore(r.Context(), chi.URLParam(r, "store_id"), req.Name, req.Color, req.ImageID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateStoreColorHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateStoreColorRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.catalog.UpdateStoreColor(r.Context(), chi.URLParam(r, "store_id"), req.Color); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateStoreImageHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateStoreImageRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.catalog.UpdateStoreImage(r.Context(), chi.URLParam(r, "store_id"), req.ImageID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeStoreImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.RemoveStoreImage(r.Context(), chi.URLParam(r, "store_id")); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeStoreHandler(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.RemoveStore(r.Context(), chi.URLParam(r, "profile_id"), chi.URLParam(r, "store_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reorderStoresHandler(w http.ResponseWriter, r *http.Request) {
	var req ReorderStoresRequest
	if err := readJson(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.catalog.ReorderStores(r.Context(), chi.URLParam(r, "profile_id"), req.StoreIDs); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
