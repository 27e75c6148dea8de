package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/pkg/apperror"
	"github.com/oksasatya/mesto-api/pkg/helpers"
	"github.com/oksasatya/mesto-api/pkg/response"
)

// ErrorHandler renders the last error attached with c.Error as the JSON
// envelope. Unclassified errors become 500 and their cause is only logged.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ae := apperror.From(c.Errors.Last().Err)
		if ae.Status() >= http.StatusInternalServerError && logger != nil {
			helpers.LogError(logger, "request failed", ae, logrus.Fields{
				"request_id": c.GetString(response.RequestIDKey),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			})
		}
		response.Error[any](c, ae.Status(), ae.Message, ae.Details)
	}
}

// Recovery turns panics into the standard 500 envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if logger != nil {
			logger.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("panic recovered")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	})
}

// NoRoute answers unmatched routes with 404.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "requested resource not found", nil)
	}
}
