package verification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studyhall/internal/shared/utils/response"
	"studyhall/pkg/apperrors"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (ctrl *Controller) Approve(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	booking, err := ctrl.service.Approve(c.Request.Context(), id, c.GetString("user_id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Payment verified successfully", booking)
}

func (ctrl *Controller) Reject(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	booking, err := ctrl.service.Reject(c.Request.Context(), id, c.GetString("user_id"), req.Reason)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Payment rejected", booking)
}

func (ctrl *Controller) History(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	audits, err := ctrl.service.History(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Verification history fetched successfully", audits)
}

func parseBookingID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid booking id")
	}
	return id, nil
}
