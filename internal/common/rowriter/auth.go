package rowriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

// Login exchanges the configured credentials for a bearer token.
// Called once per inbound request; the token is never cached or reused.
func (c *Client) Login(ctx context.Context) (string, error) {
	body := loginRequest{
		DataServer:   c.cfg.DataServer,
		UserName:     c.cfg.Username,
		Password:     c.cfg.Password,
		TouchVersion: c.cfg.TouchVersion,
		PushID:       c.cfg.PushID,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/login"), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("cim", c.cfg.CIMCode)

	resp, err := c.jsonClient.Do(req)
	if err != nil {
		return "", errors.NewAuthenticationError(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewAuthenticationError(fmt.Sprintf("failed to read login response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewAuthenticationError(
			fmt.Sprintf("login returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var loginResp loginResponse
	if err := json.Unmarshal(respBody, &loginResp); err != nil {
		return "", errors.NewAuthenticationError(fmt.Sprintf("failed to decode login response: %v", err))
	}

	if loginResp.Token == "" {
		return "", errors.NewAuthenticationError("login response contained no token")
	}

	return loginResp.Token, nil
}
