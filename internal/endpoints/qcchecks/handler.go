// internal/endpoints/qcchecks/handler.go
package qcchecks

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
)

const endpoint = "/dvi/qc_checks"

// Handler serves /dvi/qc_checks: run the keyword detectors over an RO so
// the QC flow knows which signoffs (oil service, wheel torque) apply.
type Handler struct {
	dvi    *rowriter.Client
	logger logger.Logger
	errs   *errors.ErrorHandler
}

type Output struct {
	OK         bool   `json:"ok"`
	RONumber   string `json:"ro_number"`
	OilService bool   `json:"oil_service"`
	WheelWork  bool   `json:"wheel_work"`
}

func NewHandler(dvi *rowriter.Client, log logger.Logger) *Handler {
	return &Handler{
		dvi:    dvi,
		logger: log.WithFields(map[string]interface{}{"handler": "qcchecks"}),
		errs:   errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(c echo.Context) error {
	roNumber := c.QueryParam("ro_number")
	if roNumber == "" {
		return h.errs.Respond(c, endpoint, errors.NewInputError("missing required query parameter 'ro_number'"))
	}

	ctx := c.Request().Context()

	token, err := h.dvi.Login(ctx)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	detail, err := h.dvi.GetRODetail(ctx, token, roNumber)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	return c.JSON(http.StatusOK, Output{
		OK:         true,
		RONumber:   roNumber,
		OilService: detail.HasOilService(),
		WheelWork:  detail.HasWheelWork(),
	})
}
