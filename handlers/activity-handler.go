package handlers

import (
	"net/http"
	"strconv"

	"planhub/backend/models"
	"planhub/backend/services"
)

type ActivityHandler struct {
	service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Recent returns the newest activity entries across all projects. A bad
// or missing limit falls back to the service default.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	activities, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, "Recent activities", activities)
}
