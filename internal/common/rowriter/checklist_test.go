// internal/common/rowriter/checklist_test.go
package rowriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveChecklist(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("saved"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	raw, err := client.SaveChecklist(context.Background(), "tok", "12345",
		"labor-1", "item-1", "PMA Inspection", "left tie rod worn", "Failed Inspection", "")
	require.NoError(t, err)
	assert.Equal(t, "saved", raw)

	assert.Equal(t, "/SaveChecklist", gotPath)
	assert.Equal(t, "12345", gotBody["RONumber"])
	assert.Equal(t, "labor-1", gotBody["LaborID"])
	assert.Equal(t, "item-1", gotBody["ItemID"])
	assert.Equal(t, "PMA Inspection", gotBody["Title"])
	assert.Equal(t, "left tie rod worn", gotBody["Comments"])
	assert.Equal(t, "Failed Inspection", gotBody["Condition"])
	assert.Equal(t, "R", gotBody["ROType"])
}

func TestSaveChecklistByChecklistID(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("saved"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SaveChecklistByChecklistID(context.Background(), "tok", "12345",
		"cl-9", "item-9", "note", "OK", "")
	require.NoError(t, err)

	assert.Equal(t, "/SaveChecklistByChecklistID", gotPath)
	assert.Equal(t, "cl-9", gotBody["ChecklistID"])
	assert.Equal(t, "item-9", gotBody["ItemID"])
	_, hasLabor := gotBody["LaborID"]
	assert.False(t, hasLabor)
}

func TestSaveChecklistImageCloud(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/SaveChecklistImageCloud", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("attached"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SaveChecklistImageCloud(context.Background(), "tok", "12345",
		"labor-1", "item-1", "abc123.jpg", "")
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"abc123.jpg"}, gotBody["Media"])
	assert.Equal(t, "", gotBody["ImageName"])
	assert.Equal(t, "", gotBody["Description"])
	assert.Equal(t, "R", gotBody["ROType"])
}

func TestPrimeISOCommentField(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/SaveChecklistByChecklistID", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("primed"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.PrimeISOCommentField(context.Background(), "tok", "12345", "iso-cl-1")
	require.NoError(t, err)

	// ISO uses the checklist id as its own item id, with empty content.
	assert.Equal(t, "iso-cl-1", gotBody["ChecklistID"])
	assert.Equal(t, "iso-cl-1", gotBody["ItemID"])
	assert.Equal(t, "", gotBody["Comments"])
	assert.Equal(t, "", gotBody["Condition"])
}
