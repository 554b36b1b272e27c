package routes

import (
	"time"

	"bookable/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api")
	{
		api.GET("/hello", handlers.HelloHandler)
		api.GET("/availability", h.GetAvailabilityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, h *handlers.AvailabilityHandler) {
	r.GET("/health", h.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handlers.RootHandler)
	RegisterAvailabilityRoutes(r, h)
	RegisterHealthRoute(r, h)
}
