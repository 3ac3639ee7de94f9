// Package handler provides HTTP handlers for the Clipstream API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/prn-tf/clipstream/internal/service"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps a service error to an HTTP status and writes a JSON
// error body. Validation problems carry the full list of details.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var weak *service.WeakPasswordError
	var dup *service.DuplicateFieldError

	switch {
	case errors.As(err, &weak):
		status = http.StatusBadRequest
		resp.Details = weak.Problems
	case errors.As(err, &dup):
		status = http.StatusBadRequest
		resp.Details = dup.Fields
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidTitle):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		status = http.StatusNotFound
	default:
		// Don't leak internals on unexpected failures.
		resp.Error = service.ErrInternalError.Error()
	}

	writeJSON(w, status, resp)
}

// writeBadRequest writes a 400 with the given message.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
