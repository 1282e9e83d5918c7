package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/utils"
)

type contextKey string

const userKey contextKey = "currentUser"

// SubjectResolver turns a token subject into the stored user. The user
// service is the production implementation.
type SubjectResolver interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// JWTAuthMiddleware validates the bearer token and resolves the subject
// through the user store, so a deleted user's still-valid token stops
// working immediately.
func JWTAuthMiddleware(secret []byte, users SubjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logging.Logger.Warnf("Event ID: JWT_AUTH_BEARER_PREFIX_MISSING, Description: Bearer prefix missing in Authorization header for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(secret, parts[1])
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Token rejected for request to %s %s: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, utils.ErrTokenExpired) {
					http.Error(w, "Token has expired", http.StatusUnauthorized)
				} else {
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			user, err := users.Get(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrValidation) {
					logging.Logger.Warnf("Event ID: JWT_AUTH_UNKNOWN_SUBJECT, Description: Token subject %s no longer resolves to a user", claims.Subject)
					http.Error(w, "Invalid token", http.StatusUnauthorized)
					return
				}
				logging.Logger.Errorf("Event ID: JWT_AUTH_SUBJECT_LOOKUP_FAILED, Description: Failed to resolve token subject %s: %v", claims.Subject, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by the middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
