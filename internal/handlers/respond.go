package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// respondJSON writes a JSON payload with the given status code
func respondJSON(w http.ResponseWriter, ctx context.Context, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.LogError(ctx, "Failed to encode response", err)
	}
}

// respondError writes a JSON error envelope carrying the correlation id
func respondError(w http.ResponseWriter, ctx context.Context, status int, message string) {
	correlationID, _ := ctx.Value(logger.CorrelationIDKey).(string)
	respondJSON(w, ctx, status, ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	})
}

// respondServiceError maps the error taxonomy onto HTTP statuses. Local
// errors (validation, illegal transition, missing contact, duplicate
// dispatch) never reached the backend; remote errors keep the backend's
// status and message so the caller sees them verbatim.
func respondServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	var validationErr *models.ValidationError
	var transitionErr *models.InvalidTransitionError
	var contactErr *models.MissingContactInfoError
	var remoteErr *models.RemoteError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, ctx, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &contactErr):
		respondError(w, ctx, http.StatusBadRequest, contactErr.Error())
	case errors.As(err, &transitionErr):
		respondError(w, ctx, http.StatusConflict, transitionErr.Error())
	case errors.Is(err, models.ErrRequestInFlight):
		respondError(w, ctx, http.StatusConflict, err.Error())
	case errors.As(err, &remoteErr):
		status := remoteErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		respondError(w, ctx, status, remoteErr.Message)
	default:
		logger.LogError(ctx, "Unexpected error", err)
		respondError(w, ctx, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts a numeric path variable from the request
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// decodeBody decodes the JSON request body into out
func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
