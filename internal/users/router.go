package users

import (
	"github.com/gin-gonic/gin"

	"eventhub/internal/shared/middleware"
)

// SetupUserRoutes registers the admin user management routes.
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(auth, middleware.RequireAdmin())
	{
		users.GET("", controller.ListUsers)
		users.DELETE("/:id", controller.DeleteUser)
	}
}
