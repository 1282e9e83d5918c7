package handlers

import (
	"net/http"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type DepartmentHandler struct {
	service *services.DepartmentService
}

func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.DepartmentCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	department, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: DEPARTMENT_CREATED, Description: Department %s created", department.ID.Hex())
	writeJSON(w, http.StatusCreated, "Department created", department)
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}
	writeJSON(w, http.StatusOK, "Department list", departments)
}

func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	department, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Department detail", department)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.DepartmentUpdate
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

	department, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: DEPARTMENT_UPDATED, Description: Department %s updated", id)
	writeJSON(w, http.StatusOK, "Department updated", department)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	logging.Logger.Infof("Event ID: DEPARTMENT_DELETED, Description: Department %s deleted", id)
	writeJSON(w, http.StatusOK, "Department deleted", map[string]bool{"deleted": true})
}
