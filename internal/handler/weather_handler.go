package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/spatial"
	"github.com/seaguard/driftwatch/internal/weather"
	"github.com/seaguard/driftwatch/pkg/response"
)

// WeatherHandler exposes the weather lookup used by simulations
type WeatherHandler struct {
	provider weather.Provider
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(provider weather.Provider) *WeatherHandler {
	return &WeatherHandler{provider: provider}
}

// Get handles GET /api/v1/weather?lat=&lng=
func (h *WeatherHandler) Get(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || !spatial.ValidCoordinates(lat, lng) {
		response.BadRequest(c, "lat and lng are required and must be valid coordinates")
		return
	}

	sample, err := h.provider.Fetch(c.Request.Context(), lat, lng)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "Failed to fetch weather", err)
		return
	}

	response.Success(c, sample)
}
