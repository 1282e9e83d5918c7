package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"planhub/backend/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errs.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: invalid project id", errs.ErrValidation), http.StatusBadRequest},
		{"unauthorized", errs.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", errs.ErrNotFound, http.StatusNotFound},
		{"conflict", errs.ErrAlreadyExists, http.StatusConflict},
		{"internal", errs.ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("driver exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body Response[any]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.StatusCode)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("connection string mongodb://secret@host"))

	assert.NotContains(t, rec.Body.String(), "mongodb://")
}

func TestWriteJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, "Company created", map[string]string{"name": "Acme"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response[map[string]string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, "Company created", body.Detail)
	assert.Equal(t, "Acme", body.Data["name"])
}
