package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	auth       gin.HandlerFunc
	limit      []gin.HandlerFunc
}

// NewRouter creates a new auth router. limit runs before login and register.
func NewRouter(controller *Controller, auth gin.HandlerFunc, limit ...gin.HandlerFunc) *Router {
	return &Router{controller: controller, auth: auth, limit: limit}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		public := auth.Group("", authRouter.limit...)
		public.POST("/register", authRouter.controller.Register)
		public.POST("/login", authRouter.controller.Login)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(authRouter.auth)
		{
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
