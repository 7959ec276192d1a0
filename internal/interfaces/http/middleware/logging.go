package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

const requestIDLength = 16

// Logger tags each request with an ID (reusing a client-supplied
// X-Request-ID) and logs the outcome once the handler chain returns.
// Server errors log at error level, client errors at warn, the rest at debug.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		reqID := c.GetHeader(constants.HeaderXRequestID)
		if reqID == "" {
			reqID, _ = id.Generate(requestIDLength)
		}
		c.Set(constants.ContextKeyRequestID, reqID)
		c.Header(constants.HeaderXRequestID, reqID)

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(started),
			"client_ip", c.ClientIP(),
		}
		if caller, ok := GetCaller(c); ok {
			fields = append(fields, "user_sid", caller.UserSID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}

// RequestID returns the ID Logger assigned to the request, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
