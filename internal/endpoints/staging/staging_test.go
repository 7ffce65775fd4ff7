// internal/endpoints/staging/staging_test.go
package staging

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
)

func TestStageBytes(t *testing.T) {
	data := []byte("jpeg-bytes")

	path, err := StageBytes(data)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.True(t, IsStaged(path))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStageBytesUniqueNames(t *testing.T) {
	a, err := StageBytes([]byte("one"))
	require.NoError(t, err)
	defer os.Remove(a)

	b, err := StageBytes([]byte("two"))
	require.NoError(t, err)
	defer os.Remove(b)

	assert.NotEqual(t, a, b)
}

func TestStageReader(t *testing.T) {
	path, err := StageReader(bytes.NewReader([]byte("streamed")))
	require.NoError(t, err)
	defer os.Remove(path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("streamed"), got)
}

func TestRemoveOnlyTouchesStagedFiles(t *testing.T) {
	staged, err := StageBytes([]byte("ours"))
	require.NoError(t, err)

	callerOwned := filepath.Join(t.TempDir(), "customer-photo.jpg")
	require.NoError(t, os.WriteFile(callerOwned, []byte("theirs"), 0o600))

	Remove([]string{staged, callerOwned, "", "/nonexistent/dvi_gone.jpg"})

	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))

	// Caller-owned paths survive cleanup.
	_, err = os.Stat(callerOwned)
	assert.NoError(t, err)
}

func TestIsStaged(t *testing.T) {
	assert.True(t, IsStaged(filepath.Join(os.TempDir(), "dvi_abc123.jpg")))
	assert.False(t, IsStaged("/tmp/customer-photo.jpg"))
	assert.False(t, IsStaged("/some/dir-with-dvi_/photo.jpg"))
}

// ==========================
// /dvi/upload_image
// ==========================

func uploadRequest(t *testing.T, fieldName, filename string, data []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/dvi/upload_image", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestUploadImageHandler(t *testing.T) {
	e := echo.New()
	h := NewHandler(logger.NewTestLogger(t))

	req, rec := uploadRequest(t, "file", "photo.jpg", []byte("jpeg-bytes"))
	c := e.NewContext(req, rec)

	require.NoError(t, h.Handle(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.Contains(t, rec.Body.String(), "dvi_")

	// The staged file exists until an inspection request consumes it.
	var out Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	defer os.Remove(out.TempPath)

	got, err := os.ReadFile(out.TempPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), got)
}

func TestUploadImageHandlerMissingFile(t *testing.T) {
	e := echo.New()
	h := NewHandler(logger.NewTestLogger(t))

	req, rec := uploadRequest(t, "not-file", "photo.jpg", []byte("jpeg-bytes"))
	c := e.NewContext(req, rec)

	require.NoError(t, h.Handle(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
}
