package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/pkg/apperror"
	"github.com/oksasatya/bookstore-api/pkg/response"
)

const MsgInternal = "Internal Server Error"

// ErrorHandler renders the last error attached with c.Error as the response envelope.
// Errors that are not *apperror.Error, and internal ones, are logged and become a bare 500.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := apperror.As(err)
		if !ok || appErr.Kind == apperror.KindInternal {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(CtxRequestIDKey),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).WithError(err).Error("unhandled error")
			response.Error(c, http.StatusInternalServerError, MsgInternal, nil)
			return
		}

		status := appErr.Status()
		if status == http.StatusUnauthorized && appErr.Cause != nil {
			logger.WithField("request_id", c.GetString(CtxRequestIDKey)).WithError(appErr.Cause).Debug("token rejected")
		}

		// a handler may have staged data (the empty listing page) next to the error
		if data, exists := c.Get(CtxErrorDataKey); exists {
			c.AbortWithStatusJSON(status, response.APIResponse[any]{
				Success:    false,
				StatusCode: status,
				Message:    appErr.Message,
				Data:       data,
				Errors:     nonNil(appErr.Errors),
			})
			return
		}
		response.Error(c, status, appErr.Message, appErr.Errors)
	}
}

// CtxErrorDataKey holds a payload the error envelope should carry instead of null
const CtxErrorDataKey = "errorData"

// Recovery turns panics into a logged 500 envelope
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(CtxRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, MsgInternal, nil)
	})
}

func nonNil(errs []apperror.FieldError) []apperror.FieldError {
	if errs == nil {
		return []apperror.FieldError{}
	}
	return errs
}
