package bookings

import (
	"github.com/gin-gonic/gin"

	"eventhub/internal/shared/middleware"
)

// SetupBookingRoutes registers booking routes. checkout middleware (rate
// limiting) runs only on POST /bookings.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc, checkout ...gin.HandlerFunc) {
	rg.POST("/events/:id/quote", controller.Quote)

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", append(checkout, controller.CreateBooking)...)
		bookings.GET("/me", controller.GetMyBookings)
		bookings.GET("/:id", controller.GetBooking)
		bookings.POST("/:id/cancel", controller.CancelBooking)

		bookings.GET("", middleware.RequireAdmin(), controller.ListBookings)
		bookings.GET("/export", middleware.RequireAdmin(), controller.ExportBookings)
	}
}
