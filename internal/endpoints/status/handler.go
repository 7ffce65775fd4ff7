// internal/endpoints/status/handler.go
package status

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/common/validation"
)

// Handler serves the status-only endpoints: start, ISO complete, PMA
// complete, and QC complete. Each is a pure pass-through — login, one
// ChangeStatus call, respond.
type Handler struct {
	dvi    *rowriter.Client
	logger logger.Logger
	errs   *errors.ErrorHandler
}

func NewHandler(dvi *rowriter.Client, log logger.Logger) *Handler {
	return &Handler{
		dvi:    dvi,
		logger: log.WithFields(map[string]interface{}{"handler": "status"}),
		errs:   errors.NewErrorHandler(log),
	}
}

func (h *Handler) Start(c echo.Context) error {
	return h.changeStatus(c, "/dvi/start", rowriter.StatusStart)
}

func (h *Handler) ISOComplete(c echo.Context) error {
	return h.changeStatus(c, "/dvi/iso_complete", rowriter.StatusISOComplete)
}

func (h *Handler) PMAComplete(c echo.Context) error {
	return h.changeStatus(c, "/dvi/pma_complete", rowriter.StatusPMAComplete)
}

func (h *Handler) QCComplete(c echo.Context) error {
	return h.changeStatus(c, "/dvi/qc_complete", rowriter.StatusQCComplete)
}

func (h *Handler) changeStatus(c echo.Context, endpoint, statusCode string) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.errs.Respond(c, endpoint, errors.NewInputError("failed to read request body"))
	}

	var input Input
	if err := validation.DecodeJSON(body, InputSchema(), &input); err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	h.logger.Info("changing RO status", map[string]interface{}{
		"endpoint":  endpoint,
		"ro_number": input.RONumber,
		"status":    statusCode,
	})

	ctx := c.Request().Context()

	token, err := h.dvi.Login(ctx)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	raw, err := h.dvi.ChangeStatus(ctx, token, input.RONumber, statusCode, input.ROType)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	return c.JSON(http.StatusOK, Output{
		OK:        true,
		RONumber:  input.RONumber,
		NewStatus: statusCode,
		Raw:       raw,
	})
}
