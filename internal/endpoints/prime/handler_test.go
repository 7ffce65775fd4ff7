// internal/endpoints/prime/handler_test.go
package prime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
)

func newTestHandler(t *testing.T, vendorURL, checklistID string) *Handler {
	t.Helper()

	cfg := config.DVIConfig{
		APIBase: vendorURL, MediaBase: vendorURL, PageBase: vendorURL,
		Username: "u", Password: "p", CIMCode: "c",
		DataServer: "20", TouchVersion: "Touch for iOS", PushID: "GoBridge",
		RequestTimeout: 15000, MediaTimeout: 60000,
	}

	log := logger.NewTestLogger(t)
	return NewHandler(rowriter.New(cfg, log), checklistID, log)
}

func postPrime(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/dvi/prime_iso", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Handle(e.NewContext(req, rec)))
	return rec
}

func TestPrimeISO(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]string{"Token": "tok"})
		case "/SaveChecklistByChecklistID":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte("primed"))
		default:
			t.Fatalf("unexpected vendor call: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, "iso-cl-1")
	rec := postPrime(t, h, `{"ro_number": "12345"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	// The empty entry lands under the configured ISO checklist id.
	assert.Equal(t, "iso-cl-1", gotBody["ChecklistID"])
	assert.Equal(t, "iso-cl-1", gotBody["ItemID"])
	assert.Equal(t, "", gotBody["Comments"])
}

func TestPrimeISONotConfigured(t *testing.T) {
	h := newTestHandler(t, "http://unused", "")
	rec := postPrime(t, h, `{"ro_number": "12345"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INPUT_INVALID")
}

func TestPrimeISOMissingRONumber(t *testing.T) {
	h := newTestHandler(t, "http://unused", "iso-cl-1")
	rec := postPrime(t, h, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
