package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler greets callers hitting the bare host.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the booking backend!"})
}

// HelloHandler is the API-prefixed greeting kept for frontend smoke checks.
func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// HealthHandler reports liveness plus the calendar wiring state so a glance
// at /health shows whether busy intervals are being consulted at all.
func (h *AvailabilityHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"configured": h.Service.Configured(),
		"timezone":   h.Service.Timezone(),
	})
}
