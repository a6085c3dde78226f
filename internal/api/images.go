package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/larder/internal/blob"
)

const maxImageBytes = 10 << 20

// uploadImageHandler accepts a multipart form with an "image" field, stores
// the bytes as a new blob, and returns the generated image ID. Store
// records reference the image by this ID.
func (s *Server) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		s.badRequestResponse(w, r, fmt.Errorf("missing image field: %w", err))
		return
	}
	defer file.Close()

	id, err := uuid.NewV7()
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}
	key := id.String()

	info, err := s.blobs.Put(r.Context(), key, file, blob.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}

	s.logger.Infow("image uploaded", "image_id", key, "size", info.Size)
	if err := writeJson(w, http.StatusCreated, map[string]string{"image_id": key}); err != nil {
		s.internalServerError(w, r, err)
	}
}

// getImageHandler streams the blob back. This is the download path for blob
// drivers that cannot presign URLs.
func (s *Server) getImageHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "image_id")

	info, body, err := s.blobs.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.notFoundResponse(w, r, err)
			return
		}
		s.internalServerError(w, r, err)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Errorw("streaming image", "image_id", key, "error", err)
	}
}
