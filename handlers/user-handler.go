package handlers

import (
	"net/http"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/middleware"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.UserCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_CREATED, Description: User %s created", user.ID.Hex())
	writeJSON(w, http.StatusCreated, "User created", user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context(), r.URL.Query().Get("department_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, "User list", users)
}

// Me returns the profile behind the bearer token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, "Current user", user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "User detail", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.UserUpdate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !updated {
		writeError(w, errs.ErrNotFound)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: USER_UPDATED, Description: User %s updated", id)
	writeJSON(w, http.StatusOK, "User updated", user)
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Password == "" {
		writeError(w, errs.ErrValidation)
		return
	}

	updated, err := h.service.UpdatePassword(r.Context(), id, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !updated {
		writeError(w, errs.ErrNotFound)
		return
	}
	logging.Logger.Infof("Event ID: USER_PASSWORD_UPDATED, Description: Password changed for user %s", id)
	writeJSON(w, http.StatusOK, "Password updated", map[string]bool{"updated": true})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, errs.ErrNotFound)
		return
	}
	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted", id)
	writeJSON(w, http.StatusOK, "User deleted", map[string]bool{"deleted": true})
}
