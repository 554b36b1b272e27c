// File: bookable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookable/config"
	"bookable/handlers"
	"bookable/middleware"
	"bookable/routes"
	"bookable/services"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	location, err := time.LoadLocation(config.AppConfig.BusinessTZ)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid BUSINESS_TZ %q: %v", config.AppConfig.BusinessTZ, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	availabilityService := &services.DefaultAvailabilityService{
		Feed: &services.FeedClient{
			URL:     config.AppConfig.CalendarICalURL,
			Timeout: time.Duration(config.AppConfig.FeedTimeoutSeconds) * time.Second,
		},
		Location: location,
		TZName:   config.AppConfig.BusinessTZ,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Register routes.
	routes.RegisterRoutes(router, availabilityHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
