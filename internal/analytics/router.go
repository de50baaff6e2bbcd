package analytics

import (
	"github.com/gin-gonic/gin"

	"eventhub/internal/shared/middleware"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	analytics := rg.Group("/analytics")
	analytics.Use(auth)
	analytics.Use(middleware.RequireAdmin())

	// Dashboard & Overview
	analytics.GET("/dashboard", controller.GetDashboardAnalytics)
}
