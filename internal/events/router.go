package events

import (
	"github.com/gin-gonic/gin"

	"eventhub/internal/shared/middleware"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	// Public routes - anyone can browse events
	events := router.Group("/events")
	{
		events.GET("", controller.GetAllEvents)               // GET /api/v1/events
		events.GET("/featured", controller.GetFeaturedEvents) // GET /api/v1/events/featured
		events.GET("/categories", controller.GetCategories)   // GET /api/v1/events/categories
		events.GET("/:id", controller.GetEvent)               // GET /api/v1/events/:id
	}

	// Admin routes - create, update and delete
	admin := events.Group("", auth, middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateEvent)       // POST /api/v1/events
		admin.PUT("/:id", controller.UpdateEvent)    // PUT /api/v1/events/:id
		admin.DELETE("/:id", controller.DeleteEvent) // DELETE /api/v1/events/:id
	}
}
