package shifts

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

func (ctrl *Controller) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	shift, err := ctrl.service.CreateShift(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, "Shift created successfully", shift)
}

func (ctrl *Controller) GetShift(c *gin.Context) {
	id, err := parseShiftID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	shift, err := ctrl.service.GetShift(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Shift fetched successfully", shift)
}

func (ctrl *Controller) ListShifts(c *gin.Context) {
	shifts, err := ctrl.service.ListShifts(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Shifts fetched successfully", shifts)
}

func (ctrl *Controller) UpdateShift(c *gin.Context) {
	id, err := parseShiftID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	shift, err := ctrl.service.UpdateShift(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Shift updated successfully", shift)
}

func (ctrl *Controller) DeactivateShift(c *gin.Context) {
	id, err := parseShiftID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	if err := ctrl.service.DeactivateShift(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Shift deactivated successfully", nil)
}

func parseShiftID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid shift id")
	}
	return id, nil
}
