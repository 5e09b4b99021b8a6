// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
// It reports 503 when a dependency the settlement flow needs is down.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := connectionStatus(h.dbHealthChecker)
	redisStatus := connectionStatus(h.redisHealthChecker)

	status, code := "ok", http.StatusOK
	if dbStatus != "connected" || redisStatus != "connected" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func connectionStatus(check func() bool) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
