package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jflam/ai-starter-app-postgis/internal/validation"
)

// Handler serves the restaurant endpoints. Failures are attached to the gin
// context and rendered by ErrorHandler.
type Handler struct {
	log         *slog.Logger
	restaurants RestaurantQuerier
	now         func() time.Time
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Health reports that the process is serving requests. It does not touch the database.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Time:   h.now().UTC().Format(time.RFC3339),
	})
}

// ListRestaurants handles GET /restaurants.
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurants.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// NearbyRestaurants handles GET /restaurants/nearby?lon=&lat=&km=.
func (h *Handler) NearbyRestaurants(c *gin.Context) {
	query, err := validation.ParseNearbyQuery(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.log.DebugContext(c.Request.Context(), "Searching nearby restaurants",
		"lon", query.Lon, "lat", query.Lat, "km", query.RadiusKM)

	restaurants, err := h.restaurants.Nearby(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant handles GET /restaurants/:id.
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.restaurants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}
