// internal/common/rowriter/status_test.go
package rowriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

func TestChangeStatus(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ChangeStatus", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("Status changed"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	raw, err := client.ChangeStatus(context.Background(), "tok", "12345", StatusStart, "")
	require.NoError(t, err)

	// Vendor text passes through unchanged, even though it is not JSON.
	assert.Equal(t, "Status changed", raw)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "12345", gotBody["RONumber"])
	assert.Equal(t, "3", gotBody["Status"])
	assert.Equal(t, "R", gotBody["Type"]) // empty ro_type falls back to R
}

func TestChangeStatusExplicitType(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ChangeStatus(context.Background(), "tok", "12345", StatusQCComplete, "E")
	require.NoError(t, err)
	assert.Equal(t, "E", gotBody["Type"])
	assert.Equal(t, "8", gotBody["Status"])
}

func TestChangeStatusRepeatedCallsHitVendorEachTime(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ChangeStatus(context.Background(), "tok", "12345", StatusQCComplete, "")
	require.NoError(t, err)
	_, err = client.ChangeStatus(context.Background(), "tok", "12345", StatusQCComplete, "")
	require.NoError(t, err)

	// No deduplication on our side: two calls mean two vendor writes.
	assert.Equal(t, 2, calls)
}

func TestChangeStatusVendorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "RO not found", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ChangeStatus(context.Background(), "tok", "99999", StatusStart, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeVendorRequestFailed))
	assert.Contains(t, err.Error(), "RO not found")
	assert.Contains(t, err.Error(), "500")
}
