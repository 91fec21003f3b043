package bookings

import (
	"github.com/gin-gonic/gin"

	"studyhall/internal/shared/config"
	"studyhall/internal/shared/middleware"
)

// RegisterRoutes mounts booking endpoints. Payment verification itself lives
// in the verification package; this router covers the ledger surface.
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, jwtCfg *config.JWTConfig) {
	bookingsGroup := rg.Group("/bookings")
	bookingsGroup.Use(middleware.JWTAuth(jwtCfg))
	{
		bookingsGroup.POST("", ctrl.CreateBooking)
		bookingsGroup.GET("/:id", ctrl.GetBooking)
		bookingsGroup.POST("/:id/submit-payment", ctrl.SubmitPayment)
		bookingsGroup.POST("/:id/cancel", ctrl.CancelBooking)

		admin := bookingsGroup.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/pending", ctrl.ListPending)
			admin.GET("/revenue", ctrl.Revenue)
			admin.PUT("/:id/status", ctrl.UpdateBookingStatus)
			admin.DELETE("/:id", ctrl.DeleteBooking)
		}
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(jwtCfg))
	{
		users.GET("/bookings", ctrl.ListUserBookings)
	}
}
