package api

import (
	"crew-route-service/internal/api/handlers"
	"crew-route-service/internal/platform/logger"
	"crew-route-service/internal/platform/obs"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// requestID accepts a caller-supplied UUID or generates one, and stores it
// in the request context for the logger.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id != "" {
			if _, err := uuid.Parse(id); err != nil {
				id = ""
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// requestLogger logs end-to-end request duration and response size, and
// records the request in the HTTP metrics.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		dur := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		obs.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(dur.Seconds())

		logger.WithContext(c.Request.Context()).Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.RequestURI()),
			zap.Int("status", status),
			zap.Int("bytes", max(c.Writer.Size(), 0)),
			zap.Int64("dur_ms", dur.Milliseconds()),
		)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		logger.WithContext(c.Request.Context()).Error("panic recovered",
			zap.Any("panic", rec),
			zap.String("path", c.Request.URL.Path),
		)
		handlers.WriteError(c, http.StatusInternalServerError, handlers.CodeInternal, "internal server error")
	})
}
