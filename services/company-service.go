package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

type CompanyService struct {
	store CompanyStore
}

func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store}
}

type CompanyCreate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Domain      string   `json:"domain"`
	Tags        []string `json:"tags"`
}

type CompanyUpdate struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Domain      *string   `json:"domain"`
	Tags        *[]string `json:"tags"`
}

func (u CompanyUpdate) setFields() bson.M {
	fields := bson.M{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Domain != nil {
		fields["domain"] = *u.Domain
	}
	if u.Tags != nil {
		fields["tags"] = *u.Tags
	}
	return fields
}

// Create inserts the company and re-reads the canonical stored form.
func (s *CompanyService) Create(ctx context.Context, req CompanyCreate, actorID string) (*models.Company, error) {
	now := time.Now().UTC()
	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		Tags:        emptyIfNil(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}
	id, err := s.store.Insert(ctx, company)
	if err != nil {
		return nil, err
	}
	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: company missing after insert", errs.ErrInternal)
	}
	return created, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	return s.store.FindAll(ctx)
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	companyID, err := parseID(id, "company")
	if err != nil {
		return nil, err
	}
	company, err := s.store.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errs.ErrNotFound
	}
	return company, nil
}

// Update merges only the provided fields. Even an empty payload goes to
// the store so the update timestamp and updater identity are refreshed.
func (s *CompanyService) Update(ctx context.Context, id string, req CompanyUpdate, actorID string) (bool, error) {
	companyID, err := parseID(id, "company")
	if err != nil {
		return false, err
	}
	fields := req.setFields()
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	return s.store.Update(ctx, companyID, fields)
}

func (s *CompanyService) Delete(ctx context.Context, id string) (bool, error) {
	companyID, err := parseID(id, "company")
	if err != nil {
		return false, err
	}
	return s.store.Delete(ctx, companyID)
}
