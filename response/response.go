package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stayhub/errors"
)

// Response is the envelope for every API reply
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

// Success returns a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// ServerError returns a 500 response
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Server error",
	})
}

// NotFound returns a 404 response
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: message,
	})
}

// BadRequest returns a 400 response
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict returns a 409 response
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError maps an application error onto the HTTP surface.
// RoomUnavailable and InvalidTransition are client errors; a
// ConcurrencyConflict is a retryable 409.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	switch appErr.Code {
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeRoomNotFound,
		apperrors.ErrCodeLodgingNotFound,
		apperrors.ErrCodeReservationNotFound,
		apperrors.ErrCodePaymentNotFound:
		NotFound(c, appErr.Message)
	case apperrors.ErrCodeConcurrencyConflict:
		Conflict(c, appErr.Message)
	case apperrors.ErrCodeRoomUnavailable,
		apperrors.ErrCodeInvalidTransition,
		apperrors.ErrCodeInvalidAmount,
		apperrors.ErrCodeValidation,
		apperrors.ErrCodeRequiredField,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidDate:
		BadRequest(c, appErr.Message)
	default:
		ServerError(c)
	}
}
