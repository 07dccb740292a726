package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venuebook/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the database connection is alive
type Pinger interface {
	Ping() error
}

// ExpiryScheduler is the scheduler surface exposed over HTTP
type ExpiryScheduler interface {
	GetStatus() map[string]any
	TriggerManualRun(ctx context.Context) error
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	db        Pinger
	scheduler ExpiryScheduler
}

// NewSystemHandler creates a new SystemHandler. db and scheduler may be nil
// when the corresponding subsystem is not wired.
func NewSystemHandler(db Pinger, scheduler ExpiryScheduler) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		db:        db,
		scheduler: scheduler,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "VenueBook Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports liveness of the service and its database connection
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeInternal, "database unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetSchedulerStatus returns the expiry scheduler status
func (h *SystemHandler) GetSchedulerStatus(c *gin.Context) {
	if h.scheduler == nil {
		h.NotFound(c, "scheduler is not enabled")
		return
	}
	h.Success(c, h.scheduler.GetStatus())
}

// TriggerExpirySweep queues an immediate expiry sweep
func (h *SystemHandler) TriggerExpirySweep(c *gin.Context) {
	if h.scheduler == nil {
		h.NotFound(c, "scheduler is not enabled")
		return
	}
	if err := h.scheduler.TriggerManualRun(c.Request.Context()); err != nil {
		h.InternalError(c, err.Error())
		return
	}
	h.Success(c, gin.H{"triggered": true})
}
