// internal/common/rowriter/client_test.go
package rowriter

import (
	"testing"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

// newTestClient points every vendor base URL at the given test server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := config.DVIConfig{
		APIBase:        baseURL,
		MediaBase:      baseURL,
		PageBase:       baseURL,
		Username:       "shop-user",
		Password:       "shop-pass",
		CIMCode:        "CIM123",
		DataServer:     "20",
		TouchVersion:   "Touch for iOS",
		PushID:         "GoBridge",
		RequestTimeout: 15000,
		MediaTimeout:   60000,
		RowIDPages:     []string{"Checklist.aspx", "EditChecklist.aspx"},
	}

	return New(cfg, logger.NewTestLogger(t))
}
