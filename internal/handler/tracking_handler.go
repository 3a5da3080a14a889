package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/pkg/response"
)

// TrackingHandler handles HTTP requests for tracking sessions
type TrackingHandler struct {
	tracking *service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// StopSession handles POST /api/v1/sessions/:sessionId/stop
func (h *TrackingHandler) StopSession(c *gin.Context) {
	session, err := h.tracking.StopSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, "Failed to stop session", err)
		return
	}

	response.Success(c, session)
}

// ReportPosition handles POST /api/v1/sessions/:sessionId/positions
func (h *TrackingHandler) ReportPosition(c *gin.Context) {
	var req models.PositionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.tracking.ReportPosition(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		respondError(c, "Failed to record position", err)
		return
	}

	response.Created(c, report)
}

// ListReports handles GET /api/v1/sessions/:sessionId/positions
func (h *TrackingHandler) ListReports(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	reports, err := h.tracking.ListReports(c.Request.Context(), c.Param("sessionId"), limit)
	if err != nil {
		respondError(c, "Failed to list positions", err)
		return
	}

	response.Success(c, models.PositionReportsResponse{
		Data:  reports,
		Count: len(reports),
	})
}
