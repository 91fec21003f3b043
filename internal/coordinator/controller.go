package coordinator

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhall/internal/shared/config"
	"studyhall/internal/shared/middleware"
	"studyhall/internal/shared/utils/response"
)

type Controller struct {
	coordinator *Coordinator
}

func NewController(c *Coordinator) *Controller {
	return &Controller{coordinator: c}
}

func (ctrl *Controller) GetStats(c *gin.Context) {
	stats, err := ctrl.coordinator.GetStats(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Reconciliation stats fetched successfully", stats)
}

// TriggerSweep runs a reconciliation pass on demand instead of waiting for
// the next tick.
func (ctrl *Controller) TriggerSweep(c *gin.Context) {
	ctrl.coordinator.Sweep(c.Request.Context())
	response.RespondJSON(c, http.StatusAccepted, "Reconciliation sweep triggered", nil)
}

func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, jwtCfg *config.JWTConfig) {
	internal := rg.Group("/internal/reconciliation")
	internal.Use(middleware.JWTAuth(jwtCfg), middleware.RequireAdmin())
	{
		internal.GET("/stats", ctrl.GetStats)
		internal.POST("/sweep", ctrl.TriggerSweep)
	}
}
