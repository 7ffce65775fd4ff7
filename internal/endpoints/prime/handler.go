// internal/endpoints/prime/handler.go
package prime

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/common/validation"
)

const endpoint = "/dvi/prime_iso"

// Handler serves /dvi/prime_iso: write an empty ISO comment entry so the
// vendor UI has a line to attach content to.
type Handler struct {
	dvi            *rowriter.Client
	isoChecklistID string
	logger         logger.Logger
	errs           *errors.ErrorHandler
}

type Input struct {
	RONumber string `json:"ro_number"`
}

type Output struct {
	OK       bool   `json:"ok"`
	RONumber string `json:"ro_number"`
	Message  string `json:"message"`
}

func inputSchema() map[string]interface{} {
	return validation.ObjectSchema(map[string]interface{}{
		"ro_number": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	}, "ro_number")
}

func NewHandler(dvi *rowriter.Client, isoChecklistID string, log logger.Logger) *Handler {
	return &Handler{
		dvi:            dvi,
		isoChecklistID: isoChecklistID,
		logger:         log.WithFields(map[string]interface{}{"handler": "prime"}),
		errs:           errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(c echo.Context) error {
	if h.isoChecklistID == "" {
		return h.errs.Respond(c, endpoint,
			errors.NewInputError("inspections.iso.checklist_id is not configured"))
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.errs.Respond(c, endpoint, errors.NewInputError("failed to read request body"))
	}

	var input Input
	if err := validation.DecodeJSON(body, inputSchema(), &input); err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	ctx := c.Request().Context()

	token, err := h.dvi.Login(ctx)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	if _, err := h.dvi.PrimeISOCommentField(ctx, token, input.RONumber, h.isoChecklistID); err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	return c.JSON(http.StatusOK, Output{
		OK:       true,
		RONumber: input.RONumber,
		Message:  "ISO comment field primed and ready",
	})
}
