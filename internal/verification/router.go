package verification

import (
	"github.com/gin-gonic/gin"

	"studyhall/internal/shared/config"
	"studyhall/internal/shared/middleware"
)

// RegisterRoutes mounts the payment verification surface, staff only.
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, jwtCfg *config.JWTConfig) {
	group := rg.Group("/bookings")
	group.Use(middleware.JWTAuth(jwtCfg), middleware.RequireAdmin())
	{
		group.PUT("/:id/verify-payment", ctrl.Approve)
		group.PUT("/:id/reject-payment", ctrl.Reject)
		group.GET("/:id/verification-history", ctrl.History)
	}
}
