package handlers

import (
	"net/http"
	"time"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.TaskCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created", task.ID.Hex())
	writeJSON(w, http.StatusCreated, "Task created", task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Task detail", task)
}

// Calendar lists tasks whose due date falls inside [start, end]. Both
// bounds are required RFC 3339 timestamps.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		writeError(w, errs.ErrValidation)
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		writeError(w, errs.ErrValidation)
		return
	}

	tasks, err := h.service.Calendar(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, "Task calendar", tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.TaskUpdate
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

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: TASK_UPDATED, Description: Task %s updated", id)
	writeJSON(w, http.StatusOK, "Task updated", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted", id)
	writeJSON(w, http.StatusOK, "Task deleted", map[string]bool{"deleted": true})
}
