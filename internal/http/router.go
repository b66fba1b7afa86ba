// README: HTTP router wiring handlers and middleware onto a gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridelink/internal/http/handlers"
	"ridelink/internal/http/middleware"
	"ridelink/internal/modules/registry"
	"ridelink/pkg/logger"
)

func NewRouter(reg *registry.Registry, log logger.ILogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := handlers.NewUserHandler(reg)
	tripHandler := handlers.NewTripHandler(reg)
	reportHandler := handlers.NewReportHandler(reg)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/drivers", userHandler.RegisterDriver)
			users.POST("/riders", userHandler.RegisterRider)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("/:id/rating", userHandler.Rate)
		}

		trips := api.Group("/trips")
		{
			trips.POST("", tripHandler.Post)
			trips.GET("", tripHandler.List)
			trips.GET("/available", tripHandler.ListAvailable)
			trips.GET("/matches", tripHandler.Matches)
			trips.GET("/:id", tripHandler.Get)
			trips.GET("/:id/fare", tripHandler.Fare)
			trips.POST("/:id/riders", tripHandler.Join)
			trips.POST("/:id/start", tripHandler.Start)
			trips.POST("/:id/complete", tripHandler.Complete)
		}

		api.GET("/report", reportHandler.Get)
	}

	return r
}
