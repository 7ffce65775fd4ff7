// internal/endpoints/inspection/handler.go
package inspection

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/metrics"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/staging"
)

// Condition written when the caller supplied comments but no condition.
const failedInspectionCondition = "Failed Inspection"

// Handler runs a full inspection submission: authenticate, resolve the
// checklist target, optional start transition, upload and attach images one
// at a time, save the checklist text, optional complete transition. One
// sequential pass; per-image failures are collected, everything else aborts
// the request.
type Handler struct {
	cfg    *Config
	dvi    *rowriter.Client
	logger logger.Logger
	errs   *errors.ErrorHandler
}

func NewHandler(cfg *Config, dvi *rowriter.Client, log logger.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		dvi:    dvi,
		logger: log.WithFields(map[string]interface{}{"handler": cfg.Endpoint}),
		errs:   errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(c echo.Context) error {
	input, stagedFiles, err := parseRequest(c, h.cfg)
	if err != nil {
		return h.errs.Respond(c, h.cfg.Endpoint, err)
	}

	// Staged temp files go away when the request does, success or failure.
	// Caller-supplied image_paths are only removed when they are our own
	// staged files handed back by /dvi/upload_image.
	defer func() {
		staging.Remove(stagedFiles)
		staging.Remove(input.ImagePaths)
	}()

	h.logger.Info("processing inspection", map[string]interface{}{
		"ro_number": input.RONumber,
		"title":     input.Title,
		"images":    len(input.ImagePaths),
	})

	ctx := c.Request().Context()

	token, err := h.dvi.Login(ctx)
	if err != nil {
		return h.errs.Respond(c, h.cfg.Endpoint, err)
	}

	laborID, itemID, err := h.dvi.ResolveInspectionTarget(ctx, token, input.RONumber, h.cfg.Target)
	if err != nil {
		return h.errs.Respond(c, h.cfg.Endpoint, err)
	}

	statusChanges := map[string]string{}

	if input.MoveToStart {
		raw, err := h.dvi.ChangeStatus(ctx, token, input.RONumber, h.cfg.StartStatus, "")
		if err != nil {
			return h.errs.Respond(c, h.cfg.Endpoint, err)
		}
		statusChanges["start"] = raw
	}

	blobs, uploadErrors := h.uploadImages(ctx, token, input, laborID, itemID)

	checklist, err := h.saveComments(ctx, token, input, laborID, itemID)
	if err != nil {
		return h.errs.Respond(c, h.cfg.Endpoint, err)
	}

	if input.MoveToComplete {
		raw, err := h.dvi.ChangeStatus(ctx, token, input.RONumber, h.cfg.CompleteStatus, "")
		if err != nil {
			return h.errs.Respond(c, h.cfg.Endpoint, err)
		}
		statusChanges[h.cfg.CompleteKey] = raw
	}

	return c.JSON(http.StatusOK, Output{
		OK:            true,
		RONumber:      input.RONumber,
		Title:         input.Title,
		LaborID:       laborID,
		ItemID:        itemID,
		Blobs:         blobs,
		UploadErrors:  uploadErrors,
		Checklist:     checklist,
		StatusChanges: statusChanges,
	})
}

// uploadImages uploads and attaches each image in list order. A failure on
// one image is recorded and the loop moves on — per-item partial failure,
// not all-or-nothing.
func (h *Handler) uploadImages(ctx context.Context, token string, input *Input, laborID, itemID string) ([]string, []string) {
	blobs := []string{}
	uploadErrors := []string{}

	for _, path := range input.ImagePaths {
		if path == "" {
			continue
		}

		blob, err := h.dvi.SaveMedia(ctx, token, path, nil)
		if err == nil {
			_, err = h.dvi.SaveChecklistImageCloud(ctx, token, input.RONumber, laborID, itemID, blob, "")
		}

		if err != nil {
			msg := fmt.Sprintf("failed to upload/attach %s: %v", path, err)
			h.logger.Warn("image upload failed", map[string]interface{}{
				"ro_number": input.RONumber,
				"path":      path,
				"error":     err.Error(),
			})
			metrics.ImageUploadFailures.Inc()
			uploadErrors = append(uploadErrors, msg)
			continue
		}

		blobs = append(blobs, blob)
	}

	return blobs, uploadErrors
}

// saveComments writes the checklist text. With an explicit rowid the save
// goes through the vendor's web form, which is what makes notes show up in
// the native DVI UI; otherwise the JSON SaveChecklist call is used.
func (h *Handler) saveComments(ctx context.Context, token string, input *Input, laborID, itemID string) (string, error) {
	condition := input.Condition
	if condition == "" && input.Comments != "" {
		condition = failedInspectionCondition
	}

	if input.RowID != "" {
		if err := h.dvi.PostWebFormComment(ctx, token, input.RowID, input.Comments, condition); err != nil {
			return "", err
		}
		return "saved via web form", nil
	}

	return h.dvi.SaveChecklist(ctx, token, input.RONumber, laborID, itemID,
		input.Title, input.Comments, condition, "")
}
