package handlers

import (
	"net/http"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
)

type CompanyHandler struct {
	service *services.CompanyService
}

func NewCompanyHandler(service *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CompanyCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	company, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: COMPANY_CREATED, Description: Company %s created", company.ID.Hex())
	writeJSON(w, http.StatusCreated, "Company created", company)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	writeJSON(w, http.StatusOK, "Company list", companies)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Company detail", company)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req services.CompanyUpdate
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

	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Logger.Infof("Event ID: COMPANY_UPDATED, Description: Company %s updated", id)
	writeJSON(w, http.StatusOK, "Company updated", company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	logging.Logger.Infof("Event ID: COMPANY_DELETED, Description: Company %s deleted", id)
	writeJSON(w, http.StatusOK, "Company deleted", map[string]bool{"deleted": true})
}
