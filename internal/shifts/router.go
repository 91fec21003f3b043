package shifts

import (
	"github.com/gin-gonic/gin"

	"studyhall/internal/shared/config"
	"studyhall/internal/shared/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, jwtCfg *config.JWTConfig) {
	shiftsGroup := rg.Group("/shifts")
	shiftsGroup.Use(middleware.JWTAuth(jwtCfg))
	{
		shiftsGroup.GET("", ctrl.ListShifts)
		shiftsGroup.GET("/:id", ctrl.GetShift)

		admin := shiftsGroup.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", ctrl.CreateShift)
			admin.PUT("/:id", ctrl.UpdateShift)
			admin.DELETE("/:id", ctrl.DeactivateShift)
		}
	}
}
