package api

import (
	"errors"
	"net/http"

	"github.com/mesh-intelligence/larder/pkg/types"
)

func (s *Server) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	_ = writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	_ = writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err)
	_ = writeJsonError(w, http.StatusNotFound, err.Error())
}

func (s *Server) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err)
	_ = writeJsonError(w, http.StatusConflict, err.Error())
}

// serviceError routes a service-layer error to the matching HTTP response.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.notFoundResponse(w, r, err)
	case errors.Is(err, types.ErrDuplicateName):
		s.conflictResponse(w, r, err)
	case errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidQuantity),
		errors.Is(err, types.ErrInvalidCount),
		errors.Is(err, types.ErrInvalidID):
		s.badRequestResponse(w, r, err)
	default:
		s.internalServerError(w, r, err)
	}
}
