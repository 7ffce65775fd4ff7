// internal/server/middleware.go
package server

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/metrics"
)

// RequestLogger logs every request with a request id and records the
// per-endpoint counters.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
				c.Response().Header().Set("X-Request-ID", requestID)
			}

			err := next(c)

			status := c.Response().Status
			metrics.BridgeRequestsTotal.WithLabelValues(c.Path(), strconv.Itoa(status)).Inc()

			log.Info("request handled", map[string]interface{}{
				"request_id": requestID,
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     status,
				"duration":   time.Since(start).String(),
				"remote_ip":  c.RealIP(),
			})

			return err
		}
	}
}
