package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/pkg/response"
)

// FishermanHandler handles HTTP requests for fishermen
type FishermanHandler struct {
	fishermen *service.FishermanService
	tracking  *service.TrackingService
}

// NewFishermanHandler creates a new fisherman handler
func NewFishermanHandler(fishermen *service.FishermanService, tracking *service.TrackingService) *FishermanHandler {
	return &FishermanHandler{fishermen: fishermen, tracking: tracking}
}

// Create handles POST /api/v1/fishermen
func (h *FishermanHandler) Create(c *gin.Context) {
	var req models.CreateFishermanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	f, err := h.fishermen.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to register fisherman", err)
		return
	}

	response.Created(c, f)
}

// List handles GET /api/v1/fishermen
func (h *FishermanHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	fishermen, err := h.fishermen.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, "Failed to list fishermen", err)
		return
	}

	response.Success(c, gin.H{
		"data":  fishermen,
		"count": len(fishermen),
	})
}

// Get handles GET /api/v1/fishermen/:id
func (h *FishermanHandler) Get(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	f, err := h.fishermen.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get fisherman", err)
		return
	}

	response.Success(c, f)
}

// State handles GET /api/v1/fishermen/:id/state
func (h *FishermanHandler) State(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	state, err := h.fishermen.State(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get fisherman state", err)
		return
	}

	response.Success(c, state)
}

// StartSession handles POST /api/v1/fishermen/:id/sessions
func (h *FishermanHandler) StartSession(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	session, created, err := h.tracking.StartSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to start session", err)
		return
	}

	if created {
		response.Created(c, session)
		return
	}
	response.Success(c, session)
}

// LatestPosition handles GET /api/v1/fishermen/:id/positions/latest
func (h *FishermanHandler) LatestPosition(c *gin.Context) {
	id, ok := fishermanID(c)
	if !ok {
		return
	}

	report, err := h.tracking.LatestPosition(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get latest position", err)
		return
	}

	response.Success(c, report)
}
