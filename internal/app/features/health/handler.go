package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pinger is the directory backend as far as health is concerned.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client // nil when no audit database is configured
	Backend Pinger
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, backend Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Backend: backend,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "backend":"reachable" }
//
// If the audit database or the directory backend is down: 503 and
//
//	{ "status":"error", "database":"disconnected", "backend":"reachable", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "not configured",
		Backend:  "not configured",
	}

	var dbErr, apiErr error
	var g errgroup.Group
	if h.Client != nil {
		g.Go(func() error {
			dbErr = h.Client.Ping(ctx, readpref.Primary())
			return nil
		})
	}
	if h.Backend != nil {
		g.Go(func() error {
			apiErr = h.Backend.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if h.Client != nil {
		resp.Database = "connected"
	}
	if h.Backend != nil {
		resp.Backend = "reachable"
	}
	if apiErr != nil {
		h.Log.Error("health-check: backend ping failed", zap.Error(apiErr))
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Directory backend unavailable"
		resp.Error = apiErr.Error()
	}
	if dbErr != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(dbErr))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = dbErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
