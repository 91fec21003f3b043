package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhall/pkg/apperrors"
)

// RespondJSON writes a success envelope.
func RespondJSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, StandardApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError maps a service error to its HTTP status and envelope. Unknown
// errors are masked as internal so raw detail never reaches callers.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, StandardApiResponse{
		Success: false,
		Message: appErr.Message,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Details: appErr.Details,
		},
	})
}

// RespondValidationError reports a request binding failure.
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, StandardApiResponse{
		Success: false,
		Message: "invalid request payload",
		Error: &ErrorBody{
			Code:    apperrors.CodeValidation,
			Details: map[string]interface{}{"reason": err.Error()},
		},
	})
}
