package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bookstore-api/pkg/apperror"
)

// APIResponse is the envelope every JSON response is wrapped in.
type APIResponse[T any] struct {
	Success    bool                  `json:"success"`
	StatusCode int                   `json:"statusCode"`
	Message    string                `json:"message"`
	Data       T                     `json:"data"`
	Errors     []apperror.FieldError `json:"errors"`
}

// New builds an envelope; success is derived from the status code.
func New[T any](status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Success:    status < http.StatusBadRequest,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Errors:     []apperror.FieldError{},
	}
}

// JSON writes data in the envelope with the given status
func JSON[T any](c *gin.Context, status int, data T, message string) {
	resp := New(status, data, message)
	c.JSON(resp.StatusCode, resp)
}

// Error writes an error envelope (data is always null)
func Error(c *gin.Context, status int, message string, errs []apperror.FieldError) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if errs == nil {
		errs = []apperror.FieldError{}
	}
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Data:       nil,
		Errors:     errs,
	})
}
