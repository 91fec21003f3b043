package bookings

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

func (ctrl *Controller) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, "Booking created successfully", booking)
}

func (ctrl *Controller) GetBooking(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	// Non-admin callers only see their own bookings.
	if c.GetString("role") != middleware.RoleAdmin && booking.UserID != c.GetString("user_id") {
		response.RespondError(c, apperrors.NotFoundWithID("booking", id.String()))
		return
	}
	response.RespondJSON(c, http.StatusOK, "Booking fetched successfully", booking)
}

func (ctrl *Controller) ListUserBookings(c *gin.Context) {
	bookings, err := ctrl.service.ListUserBookings(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Bookings fetched successfully", ListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	})
}

// ListPending is the staff verification work queue.
func (ctrl *Controller) ListPending(c *gin.Context) {
	status := StatusPaymentSubmitted
	if q := c.Query("status"); q != "" {
		status = BookingStatus(q)
	}

	bookings, err := ctrl.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Bookings fetched successfully", ListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	})
}

func (ctrl *Controller) SubmitPayment(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	booking, err := ctrl.service.SubmitPayment(c.Request.Context(), id, c.GetString("user_id"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Payment submitted successfully", booking)
}

func (ctrl *Controller) CancelBooking(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	isAdmin := c.GetString("role") == middleware.RoleAdmin
	booking, err := ctrl.service.CancelBooking(c.Request.Context(), id, c.GetString("user_id"), isAdmin)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Booking cancelled successfully", booking)
}

func (ctrl *Controller) UpdateBookingStatus(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	booking, err := ctrl.service.UpdateBookingStatus(c.Request.Context(), id, BookingStatus(req.Status))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Booking status updated successfully", booking)
}

func (ctrl *Controller) DeleteBooking(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	if err := ctrl.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (ctrl *Controller) Revenue(c *gin.Context) {
	revenue, err := ctrl.service.Revenue(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "Revenue fetched successfully", revenue)
}

func parseBookingID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid booking id")
	}
	return id, nil
}
