package rowriter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/metrics"
)

// blobOptions is the fixed metadata payload SaveMedia expects alongside the
// image part.
const blobOptions = `{"Tier":0,"Location":0,"test":null}`

// SaveMedia uploads one image to R.O. Writer blob storage and returns the
// blob name. Exactly one of path or content must be supplied; when both are
// set the path wins. Source files are not deleted — that stays with the
// caller.
func (c *Client) SaveMedia(ctx context.Context, token, path string, content []byte) (string, error) {
	if path == "" && content == nil {
		return "", errors.NewInputError("must provide either an image path or image bytes")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read image %s: %w", path, err)
		}
		content = data
	}

	blobName := uuid.New().String()
	blobName = strings.ReplaceAll(blobName, "-", "") + ".jpg"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	optionsHeader := textproto.MIMEHeader{}
	optionsHeader.Set("Content-Disposition", `form-data; name="Options"`)
	optionsHeader.Set("Content-Type", "application/json")
	optionsPart, err := writer.CreatePart(optionsHeader)
	if err != nil {
		return "", fmt.Errorf("failed to build Options part: %w", err)
	}
	if _, err := optionsPart.Write([]byte(blobOptions)); err != nil {
		return "", fmt.Errorf("failed to write Options part: %w", err)
	}

	imageHeader := textproto.MIMEHeader{}
	imageHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, blobName, blobName))
	imageHeader.Set("Content-Type", "image/jpeg")
	imagePart, err := writer.CreatePart(imageHeader)
	if err != nil {
		return "", fmt.Errorf("failed to build image part: %w", err)
	}
	if _, err := imagePart.Write(content); err != nil {
		return "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	uploadURL := strings.TrimSuffix(c.cfg.MediaBase, "/") + "/v2/BlobStorage/SaveMedia"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create SaveMedia request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.mediaClient.Do(req)
	metrics.VendorRequestDuration.WithLabelValues("SaveMedia").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues("SaveMedia", "error").Inc()
		return "", fmt.Errorf("failed to execute SaveMedia request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues("SaveMedia", "error").Inc()
		return "", fmt.Errorf("failed to read SaveMedia response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.VendorRequestsTotal.WithLabelValues("SaveMedia", "error").Inc()
		return "", errors.NewVendorRequestError("SaveMedia", resp.StatusCode, string(respBody))
	}

	metrics.VendorRequestsTotal.WithLabelValues("SaveMedia", "success").Inc()

	// SaveMedia returns the blob name as a quoted JSON string.
	return strings.Trim(strings.TrimSpace(string(respBody)), `"`), nil
}
