package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"
	"planhub/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSecret = []byte("middleware-test-secret")

type fakeResolver struct {
	user *models.User
	err  error
}

func (f *fakeResolver) Get(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := JWTAuthMiddleware(testSecret, &fakeResolver{})(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsBadScheme(t *testing.T) {
	handler := JWTAuthMiddleware(testSecret, &fakeResolver{})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, primitive.NewObjectID().Hex(), "member", "alice", -time.Minute)
	require.NoError(t, err)
	handler := JWTAuthMiddleware(testSecret, &fakeResolver{})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestMiddlewareRejectsDeletedSubject(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, primitive.NewObjectID().Hex(), "member", "alice", time.Hour)
	require.NoError(t, err)
	handler := JWTAuthMiddleware(testSecret, &fakeResolver{err: errs.ErrNotFound})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareInjectsUser(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), LoginID: "alice"}
	token, err := utils.GenerateToken(testSecret, user.ID.Hex(), "member", "alice", time.Hour)
	require.NoError(t, err)

	var seen *models.User
	handler := JWTAuthMiddleware(testSecret, &fakeResolver{user: user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = got
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}
