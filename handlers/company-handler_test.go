package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planhub/backend/errs"
	"planhub/backend/models"
	"planhub/backend/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCompanyStore struct {
	companies []*models.Company
	insertErr error
}

func (f *fakeCompanyStore) Insert(_ context.Context, company *models.Company) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	f.companies = append(f.companies, company)
	return company.ID, nil
}

func (f *fakeCompanyStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Company, error) {
	for _, company := range f.companies {
		if company.ID == id {
			return company, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyStore) FindAll(_ context.Context) ([]models.Company, error) {
	var out []models.Company
	for _, company := range f.companies {
		out = append(out, *company)
	}
	return out, nil
}

func (f *fakeCompanyStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	company, _ := f.FindByID(context.Background(), id)
	if company == nil {
		return false, nil
	}
	if name, ok := fields["name"].(string); ok {
		company.Name = name
	}
	return true, nil
}

func (f *fakeCompanyStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, company := range f.companies {
		if company.ID == id {
			f.companies = append(f.companies[:i], f.companies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func companyRouter(store *fakeCompanyStore) *mux.Router {
	handler := NewCompanyHandler(services.NewCompanyService(store))
	router := mux.NewRouter()
	router.HandleFunc("/companies", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/companies", handler.List).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id}", handler.Update).Methods(http.MethodPatch)
	router.HandleFunc("/companies/{id}", handler.Delete).Methods(http.MethodDelete)
	return router
}

func TestCompanyCreateAndGet(t *testing.T) {
	store := &fakeCompanyStore{}
	router := companyRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies",
		strings.NewReader(`{"name": "Acme", "domain": "acme.example"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Response[models.Company]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Acme", created.Data.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/"+created.Data.ID.Hex(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompanyGetUnknownReturns404(t *testing.T) {
	router := companyRouter(&fakeCompanyStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/"+primitive.NewObjectID().Hex(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompanyGetMalformedIDReturns400(t *testing.T) {
	router := companyRouter(&fakeCompanyStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/not-hex", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyCreateDuplicateReturns409(t *testing.T) {
	router := companyRouter(&fakeCompanyStore{insertErr: errs.ErrAlreadyExists})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies",
		strings.NewReader(`{"name": "Acme"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompanyListEncodesEmptyAsArray(t *testing.T) {
	router := companyRouter(&fakeCompanyStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestCompanyDeleteUnknownReturns404(t *testing.T) {
	router := companyRouter(&fakeCompanyStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/companies/"+primitive.NewObjectID().Hex(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
