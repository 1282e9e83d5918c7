package handlers

import (
	"net/http"

	"planhub/backend/logging"
	"planhub/backend/services"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Login attempt rejected: %v", err)
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: User logged in successfully")
	writeJSON(w, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		logging.Logger.Warnf("Event ID: REGISTER_FAILED, Description: Registration rejected: %v", err)
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: REGISTER_SUCCESS, Description: User %s registered", user.ID.Hex())
	writeJSON(w, http.StatusCreated, "User registered", user)
}
