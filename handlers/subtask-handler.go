package handlers

import (
	"net/http"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type SubtaskHandler struct {
	service *services.SubtaskService
}

func NewSubtaskHandler(service *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{service: service}
}

func (h *SubtaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.SubtaskCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	subtask, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: SUBTASK_CREATED, Description: Subtask %s created", subtask.ID.Hex())
	writeJSON(w, http.StatusCreated, "Subtask created", subtask)
}

func (h *SubtaskHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	subtasks, err := h.service.ListByTask(r.Context(), mux.Vars(r)["taskId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if subtasks == nil {
		subtasks = []models.Subtask{}
	}
	writeJSON(w, http.StatusOK, "Subtask list", subtasks)
}

func (h *SubtaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	subtask, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Subtask detail", subtask)
}

func (h *SubtaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.SubtaskUpdate
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

	subtask, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: SUBTASK_UPDATED, Description: Subtask %s updated", id)
	writeJSON(w, http.StatusOK, "Subtask updated", subtask)
}

func (h *SubtaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	deleted, err := h.service.Delete(r.Context(), id, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, errs.ErrNotFound)
		return
	}
	logging.Logger.Infof("Event ID: SUBTASK_DELETED, Description: Subtask %s deleted", id)
	writeJSON(w, http.StatusOK, "Subtask deleted", map[string]bool{"deleted": true})
}

// Reorder rewrites the order of the task's subtasks to match the posted
// id list.
func (h *SubtaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	var req struct {
		OrderedIDs []string `json:"ordered_ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Reorder(r.Context(), taskID, req.OrderedIDs); err != nil {
		writeError(w, err)
		return
	}

	subtasks, err := h.service.ListByTask(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	if subtasks == nil {
		subtasks = []models.Subtask{}
	}
	logging.Logger.Infof("Event ID: SUBTASK_REORDERED, Description: Subtasks of task %s reordered", taskID)
	writeJSON(w, http.StatusOK, "Subtasks reordered", subtasks)
}
