// Package rowriter is the client for the R.O. Writer DVI vendor API.
// It covers the three vendor hosts the bridge talks to: the JSON API
// (login, status, checklist), blob storage (media upload), and the
// web-form pages (RowID scraping).
//
// Every call obtains its own token via Login; nothing is cached between
// requests and nothing retries. Failures come back as BridgeError values
// from internal/common/errors.
package rowriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/metrics"
)

// Client talks to the R.O. Writer DVI API.
type Client struct {
	cfg config.DVIConfig

	// JSON calls use a short timeout, blob uploads a long one.
	jsonClient  *http.Client
	mediaClient *http.Client

	logger logger.Logger
}

func New(cfg config.DVIConfig, log logger.Logger) *Client {
	return &Client{
		cfg:         cfg,
		jsonClient:  &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		mediaClient: &http.Client{Timeout: cfg.MediaTimeoutDuration()},
		logger:      log.WithFields(map[string]interface{}{"component": "rowriter"}),
	}
}

func (c *Client) apiURL(path string) string {
	return strings.TrimSuffix(c.cfg.APIBase, "/") + path
}

func (c *Client) pageURL(path string) string {
	return strings.TrimSuffix(c.cfg.PageBase, "/") + path
}

// postJSON issues an authenticated JSON POST against the DVI API and
// returns the raw response body. The vendor often answers with non-JSON
// text, so the body is passed through unchanged.
func (c *Client) postJSON(ctx context.Context, token, operation, path string, body interface{}) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(path), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create %s request: %w", operation, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.jsonClient.Do(req)
	metrics.VendorRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to execute %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", errors.NewVendorRequestError(operation, resp.StatusCode, string(respBody))
	}

	metrics.VendorRequestsTotal.WithLabelValues(operation, "success").Inc()
	return string(respBody), nil
}

// getJSON issues an authenticated GET against the DVI API and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, token, operation, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.jsonClient.Do(req)
	metrics.VendorRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("failed to execute %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return errors.NewVendorRequestError(operation, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("failed to unmarshal %s response: %w", operation, err)
	}

	metrics.VendorRequestsTotal.WithLabelValues(operation, "success").Inc()
	return nil
}
