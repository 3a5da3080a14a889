package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/drift"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/pkg/response"
)

// DriftHandler handles HTTP requests for drift simulations
type DriftHandler struct {
	drift *service.DriftService
}

// NewDriftHandler creates a new drift handler
func NewDriftHandler(drift *service.DriftService) *DriftHandler {
	return &DriftHandler{drift: drift}
}

// Simulate handles POST /api/v1/fishermen/:id/drift. An empty body runs with
// defaults from the last known position.
func (h *DriftHandler) Simulate(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	var req models.DriftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.FishermanID = id

	resp, err := h.drift.Simulate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to simulate drift", err)
		return
	}

	response.Created(c, resp)
}

// Latest handles GET /api/v1/fishermen/:id/drift/latest
func (h *DriftHandler) Latest(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	resp, err := h.drift.Latest(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get latest drift simulation", err)
		return
	}

	response.Success(c, resp)
}

// LatestGeoJSON handles GET /api/v1/fishermen/:id/drift/latest/geojson. The
// body is a bare FeatureCollection so map clients can load it directly.
func (h *DriftHandler) LatestGeoJSON(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	resp, err := h.drift.Latest(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get latest drift simulation", err)
		return
	}

	body, err := drift.ToFeatureCollection(resp.Simulation).MarshalJSON()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to encode GeoJSON", err)
		return
	}

	c.Data(http.StatusOK, "application/geo+json", body)
}

// Get handles GET /api/v1/drift/:simId
func (h *DriftHandler) Get(c *gin.Context) {
	resp, err := h.drift.Get(c.Request.Context(), c.Param("simId"))
	if err != nil {
		respondError(c, "Failed to get drift simulation", err)
		return
	}

	response.Success(c, resp)
}

// SessionHistory handles GET /api/v1/sessions/:sessionId/drift
func (h *DriftHandler) SessionHistory(c *gin.Context) {
	sims, err := h.drift.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, "Failed to list drift simulations", err)
		return
	}

	response.Success(c, gin.H{
		"data":  sims,
		"count": len(sims),
	})
}
