package handlers

import (
	"net/http"
	"strings"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	service *services.ProjectService
	tasks   *services.TaskService
}

func NewProjectHandler(service *services.ProjectService, tasks *services.TaskService) *ProjectHandler {
	return &ProjectHandler{service: service, tasks: tasks}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ProjectCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created", project.ID.Hex())
	writeJSON(w, http.StatusCreated, "Project created", project)
}

// List filters by department_id and by status, given either as repeated
// status values or one comma-separated statuses value.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	statuses := query["status"]
	if raw := query.Get("statuses"); raw != "" {
		for _, status := range strings.Split(raw, ",") {
			if status = strings.TrimSpace(status); status != "" {
				statuses = append(statuses, status)
			}
		}
	}
	projects, err := h.service.List(r.Context(), query.Get("department_id"), statuses)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, "Project list", projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Project detail", project)
}

// Full returns the project with its tasks, their subtasks and recent
// activity in one response.
func (h *ProjectHandler) Full(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Project full detail", detail)
}

func (h *ProjectHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListByProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, "Project tasks", tasks)
}

// TaskStats groups the project's tasks by status and priority.
func (h *ProjectHandler) TaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tasks.Stats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Project task stats", stats)
}

// Stats groups all projects by status and by department.
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Project stats", stats)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.ProjectUpdate
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

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: PROJECT_UPDATED, Description: Project %s updated", id)
	writeJSON(w, http.StatusOK, "Project updated", project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted", id)
	writeJSON(w, http.StatusOK, "Project deleted", map[string]bool{"deleted": true})
}
