// internal/common/errors/handler.go
package errors

import (
	"github.com/labstack/echo/v4"
)

// ErrorHandler converts any error into the structured JSON failure response
// every endpoint returns. Nothing propagates to the transport layer uncaught.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond normalizes err and writes {ok:false, error} with the mapped
// HTTP status.
func (h *ErrorHandler) Respond(c echo.Context, endpoint string, err error) error {
	bridgeErr := Normalize(err)

	h.logger.Error("endpoint failed", map[string]interface{}{
		"endpoint": endpoint,
		"code":     string(bridgeErr.Code),
		"message":  bridgeErr.Message,
		"details":  bridgeErr.Details,
	})

	return c.JSON(bridgeErr.HTTPStatus(), map[string]interface{}{
		"ok":    false,
		"error": bridgeErr.Error(),
	})
}
