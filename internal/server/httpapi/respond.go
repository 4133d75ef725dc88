package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/udsonbraga/app-lia-2025/internal/common"
)

// respondJSON writes v as a JSON response with the given status code.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err.Error())
	}
}

// respondError maps service errors onto the HTTP error contract:
// field-keyed 400 for validation errors, 401 for auth failures, 404 for
// unowned/missing ids, 500 otherwise. Ownership mismatches surface as 404
// because every query is owner-scoped.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var v *common.ValidationError
	switch {
	case errors.As(err, &v):
		s.respondJSON(w, http.StatusBadRequest, v.Fields)
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorSessionExpired):
		s.respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid or expired token"})
	case errors.Is(err, common.ErrorNotFound):
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
	}
}

// decodeJSON reads the request body into dst, rejecting malformed JSON
// with a validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("detail", "invalid JSON body")
	}
	return nil
}
