package handlers

import (
	"context"
	"net/http"

	"github.com/akinalp/sitekit/pkg"
)

// Pinger, bağımlılığın erişilebilir olup olmadığını kontrol eder (*sql.DB karşılar).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse, health check yanıtı.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Connections int    `json:"ws_connections"`
}

// ConnectionCounter, açık WebSocket bağlantı sayısını verir (ws.Hub karşılar).
type ConnectionCounter interface {
	ConnectionCount() int
}

// HealthHandler, public health check endpoint'i.
type HealthHandler struct {
	db  Pinger
	hub ConnectionCounter
}

// NewHealthHandler, constructor.
func NewHealthHandler(db Pinger, hub ConnectionCounter) *HealthHandler {
	return &HealthHandler{db: db, hub: hub}
}

// Check godoc
// GET /api/health
// DB erişilemiyorsa 503 döner.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if h.hub != nil {
		resp.Connections = h.hub.ConnectionCount()
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		pkg.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}
