package seats

import (
	"github.com/gin-gonic/gin"

	"studyhall/internal/shared/config"
	"studyhall/internal/shared/middleware"
)

// RegisterRoutes mounts seat endpoints. Status reads and writes are open to
// any authenticated caller (the booking ledger calls them service to
// service); seat management is admin only.
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, jwtCfg *config.JWTConfig) {
	seatsGroup := rg.Group("/seats")
	seatsGroup.Use(middleware.JWTAuth(jwtCfg))
	{
		seatsGroup.GET("", ctrl.ListSeats)
		seatsGroup.GET("/:id", ctrl.GetSeat)
		seatsGroup.GET("/:id/status", ctrl.GetStatus)
		seatsGroup.PATCH("/:id/status", ctrl.SetStatus)

		admin := seatsGroup.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", ctrl.CreateSeat)
			admin.PUT("/:id", ctrl.UpdateSeat)
			admin.DELETE("/:id", ctrl.DeactivateSeat)
		}
	}
}
