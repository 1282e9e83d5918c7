package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/middleware"
)

// Response is the envelope every endpoint returns, parameterized by the
// payload type. Data stays in the envelope even when empty so list
// endpoints encode [] and error responses encode null.
type Response[T any] struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	Data       T      `json:"data"`
}

func writeJSON[T any](w http.ResponseWriter, status int, detail string, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response[T]{StatusCode: status, Detail: detail, Data: data}); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: failed to encode response: %v", err)
	}
}

// writeError maps the domain error set onto HTTP statuses. Anything
// outside the set is an internal failure; the raw error goes to the log,
// never to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeJSON[any](w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errs.ErrUnauthorized):
		writeJSON[any](w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, errs.ErrNotFound):
		writeJSON[any](w, http.StatusNotFound, "Resource not found", nil)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeJSON[any](w, http.StatusConflict, "Resource already exists", nil)
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: unexpected error: %v", err)
		writeJSON[any](w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.ErrValidation
	}
	return nil
}

// actorID returns the authenticated user's id, or "" on public routes.
func actorID(r *http.Request) string {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		return user.ID.Hex()
	}
	return ""
}
