// internal/endpoints/notes/handler.go
package notes

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/common/validation"
)

const (
	endpoint = "/dvi/pma_technician_notes"

	// Condition value the PMA "Technician Notes" item expects.
	notesCondition = "See Notes Below"
	notesTitle     = "Technician Notes"
)

// Handler writes technician notes into the fixed PMA notes checklist item.
type Handler struct {
	dvi             *rowriter.Client
	techNotesItemID string
	logger          logger.Logger
	errs            *errors.ErrorHandler
}

func NewHandler(dvi *rowriter.Client, techNotesItemID string, log logger.Logger) *Handler {
	return &Handler{
		dvi:             dvi,
		techNotesItemID: techNotesItemID,
		logger:          log.WithFields(map[string]interface{}{"handler": "notes"}),
		errs:            errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.errs.Respond(c, endpoint, errors.NewInputError("failed to read request body"))
	}

	var input Input
	if err := validation.DecodeJSON(body, InputSchema(), &input); err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	h.logger.Info("saving technician notes", map[string]interface{}{
		"ro_number": input.RONumber,
		"labor_id":  input.LaborID,
	})

	ctx := c.Request().Context()

	token, err := h.dvi.Login(ctx)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	result, err := h.dvi.SaveChecklist(ctx, token, input.RONumber, input.LaborID,
		h.techNotesItemID, notesTitle, input.Notes, notesCondition, "")
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	return c.JSON(http.StatusOK, Output{OK: true, Result: result})
}
