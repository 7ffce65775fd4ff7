// internal/endpoints/rowid/handler.go
package rowid

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
)

const endpoint = "/dvi/get_rowid"

// Handler serves /dvi/get_rowid: scrape the vendor checklist pages for the
// internal RowID the JSON API never exposes.
type Handler struct {
	dvi    *rowriter.Client
	logger logger.Logger
	errs   *errors.ErrorHandler
}

type Output struct {
	OK       bool   `json:"ok"`
	RONumber string `json:"ro_number"`
	RowID    string `json:"rowid"`
}

func NewHandler(dvi *rowriter.Client, log logger.Logger) *Handler {
	return &Handler{
		dvi:    dvi,
		logger: log.WithFields(map[string]interface{}{"handler": "rowid"}),
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

	rowID, err := h.dvi.ResolveRowID(ctx, token, roNumber)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	h.logger.Info("resolved rowid", map[string]interface{}{
		"ro_number": roNumber,
		"rowid":     rowID,
	})

	return c.JSON(http.StatusOK, Output{OK: true, RONumber: roNumber, RowID: rowID})
}
