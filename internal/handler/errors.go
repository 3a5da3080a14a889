package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/pkg/response"
)

// respondError maps service errors onto status codes
func respondError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, message, err)
	case errors.Is(err, service.ErrConflict):
		response.Error(c, http.StatusConflict, message, err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}

// fishermanID parses the :id path parameter
func fishermanID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid fisherman ID", err)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameter "+key, err)
		return 0, false
	}
	return v, true
}
