package seats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studyhall/internal/shared/middleware"
	"studyhall/internal/shared/utils/response"
	"studyhall/pkg/apperrors"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) CreateSeat(c *gin.Context) {
	var req CreateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	seat, err := ctrl.service.CreateSeat(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, "Seat created successfully", seat)
}

func (ctrl *Controller) GetSeat(c *gin.Context) {
	id, err := parseSeatID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	seat, err := ctrl.service.GetSeat(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seat fetched successfully", seat)
}

func (ctrl *Controller) ListSeats(c *gin.Context) {
	section := c.Query("section")
	status := SeatStatus(c.Query("status"))

	seats, err := ctrl.service.ListSeats(c.Request.Context(), section, status)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seats fetched successfully", ListResponse{
		Seats: seats,
		Total: len(seats),
	})
}

func (ctrl *Controller) GetStatus(c *gin.Context) {
	id, err := parseSeatID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	status, err := ctrl.service.GetStatus(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seat status fetched successfully", StatusResponse{
		SeatID: id,
		Status: status,
	})
}

func (ctrl *Controller) SetStatus(c *gin.Context) {
	id, err := parseSeatID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	// Override is only honored when the caller actually holds the admin role.
	override := req.AdminOverride && c.GetString("role") == middleware.RoleAdmin

	seat, err := ctrl.service.SetStatus(c.Request.Context(), id, SeatStatus(req.Status), override)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seat status updated successfully", seat)
}

func (ctrl *Controller) UpdateSeat(c *gin.Context) {
	id, err := parseSeatID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req UpdateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	seat, err := ctrl.service.UpdateSeat(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seat updated successfully", seat)
}

func (ctrl *Controller) DeactivateSeat(c *gin.Context) {
	id, err := parseSeatID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	if err := ctrl.service.DeactivateSeat(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Seat deactivated successfully", nil)
}

func parseSeatID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid seat id")
	}
	return id, nil
}
