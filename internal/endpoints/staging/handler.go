// internal/endpoints/staging/handler.go
package staging

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
)

const endpoint = "/dvi/upload_image"

// Handler serves /dvi/upload_image: stage one uploaded file to a temp path
// the caller can later pass to an inspection endpoint via image_paths.
type Handler struct {
	logger logger.Logger
	errs   *errors.ErrorHandler
}

type Output struct {
	OK       bool   `json:"ok"`
	TempPath string `json:"temp_path"`
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"handler": "staging"}),
		errs:   errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.errs.Respond(c, endpoint, errors.NewInputError("no file part in request"))
	}
	if fileHeader.Filename == "" {
		return h.errs.Respond(c, endpoint, errors.NewInputError("empty filename"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return h.errs.Respond(c, endpoint, errors.NewInputError("failed to open uploaded file"))
	}
	defer src.Close()

	tempPath, err := StageReader(src)
	if err != nil {
		return h.errs.Respond(c, endpoint, err)
	}

	h.logger.Info("staged uploaded image", map[string]interface{}{
		"filename":  fileHeader.Filename,
		"temp_path": tempPath,
	})

	return c.JSON(http.StatusOK, Output{OK: true, TempPath: tempPath})
}
