package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"mate-storefront-layer/internal/infrastructure/upstream"

	"github.com/rs/zerolog"
)

// errorBody mirrors the backend's {"detail": "..."} error shape so
// storefront clients handle layer and backend failures the same way.
type errorBody struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps an error to a response. Backend errors pass through
// with their original status and message; anything else is a 500 with a
// generic detail, logged for investigation.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.StatusCode, errorBody{Detail: apiErr.Message})
		return
	}

	logger.Error().Err(err).Msg("Request failed")
	respondJSON(w, http.StatusInternalServerError, errorBody{Detail: "Something went wrong. Please try again."})
}

// respondBadRequest surfaces a validation failure with the given message.
func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Detail: msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
