package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

type DepartmentService struct {
	store DepartmentStore
}

func NewDepartmentService(store DepartmentStore) *DepartmentService {
	return &DepartmentService{store: store}
}

type DepartmentCreate struct {
	CompanyID   string   `json:"company_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	LeadID      string   `json:"lead_id"`
	Tags        []string `json:"tags"`
}

type DepartmentUpdate struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	LeadID      *string   `json:"lead_id"`
	Tags        *[]string `json:"tags"`
}

func (u DepartmentUpdate) setFields() (bson.M, error) {
	fields := bson.M{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.LeadID != nil {
		// An explicit empty string clears the lead.
		leadID, err := parseOptionalID(*u.LeadID, "lead")
		if err != nil {
			return nil, err
		}
		fields["lead_id"] = leadID
	}
	if u.Tags != nil {
		fields["tags"] = *u.Tags
	}
	return fields, nil
}

func (s *DepartmentService) Create(ctx context.Context, req DepartmentCreate, actorID string) (*models.Department, error) {
	companyID, err := parseID(req.CompanyID, "company")
	if err != nil {
		return nil, err
	}
	leadID, err := parseOptionalID(req.LeadID, "lead")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	department := &models.Department{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		LeadID:      leadID,
		Tags:        emptyIfNil(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}
	id, err := s.store.Insert(ctx, department)
	if err != nil {
		return nil, err
	}
	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: department missing after insert", errs.ErrInternal)
	}
	return created, nil
}

// List filters by company when companyID is non-empty.
func (s *DepartmentService) List(ctx context.Context, companyID string) ([]models.Department, error) {
	if companyID == "" {
		return s.store.FindAll(ctx)
	}
	id, err := parseID(companyID, "company")
	if err != nil {
		return nil, err
	}
	return s.store.FindByCompany(ctx, id)
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	departmentID, err := parseID(id, "department")
	if err != nil {
		return nil, err
	}
	department, err := s.store.FindByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, errs.ErrNotFound
	}
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, id string, req DepartmentUpdate, actorID string) (bool, error) {
	departmentID, err := parseID(id, "department")
	if err != nil {
		return false, err
	}
	fields, err := req.setFields()
	if err != nil {
		return false, err
	}
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	return s.store.Update(ctx, departmentID, fields)
}

func (s *DepartmentService) Delete(ctx context.Context, id string) (bool, error) {
	departmentID, err := parseID(id, "department")
	if err != nil {
		return false, err
	}
	return s.store.Delete(ctx, departmentID)
}
