package handlers

import (
	"net/http"

	"planhub/backend/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}

// HealthDB pings the primary; a failed ping reports the service as
// degraded with a 503.
func (h *HealthHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context(), readpref.Primary()); err != nil {
		logging.Logger.Errorf("Event ID: HEALTH_DB_PING_FAILED, Description: MongoDB ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, "Database unreachable", map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, "Database is healthy", map[string]string{"status": "ok"})
}
