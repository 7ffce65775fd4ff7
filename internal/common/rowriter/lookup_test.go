// internal/common/rowriter/lookup_test.go
package rowriter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

func TestFindLaborID(t *testing.T) {
	detail := &RODetail{
		LaborList: []Labor{
			{ID: "labor-1", Description: "Brake pad replacement"},
			{ID: "labor-2", Description: "pma inspection"},
			{ID: "labor-3", Description: "PMA Inspection (rework)"},
		},
	}

	// Case-insensitive substring, first match in list order wins.
	assert.Equal(t, "labor-2", detail.FindLaborID("PMA"))
	assert.Equal(t, "labor-1", detail.FindLaborID("brake"))
	assert.Equal(t, "", detail.FindLaborID("ISO"))
}

func TestFindLaborIDSkipsEmptyIDs(t *testing.T) {
	detail := &RODetail{
		LaborList: []Labor{
			{ID: "", Description: "PMA Inspection"},
			{ID: "labor-2", Description: "PMA Inspection"},
		},
	}

	assert.Equal(t, "labor-2", detail.FindLaborID("PMA"))
}

func TestFindChecklist(t *testing.T) {
	detail := &RODetail{
		CheckLists: []ChecklistEntry{
			{ID: "cl-1", Name: "Oil Change Signoff"},
			{ID: "cl-2", Name: "ISO Vehicle Inspection"},
		},
	}

	found := detail.FindChecklist("iso vehicle inspection")
	require.NotNil(t, found)
	assert.Equal(t, "cl-2", found.ID)

	assert.Nil(t, detail.FindChecklist("ISO")) // exact name match, not substring
}

func TestFirstMatchingItem(t *testing.T) {
	items := []ChecklistItem{
		{ID: "item-1", Title: "Fluids"},
		{ID: "item-2", Title: "pma inspection notes"},
	}

	item, err := FirstMatchingItem(items, "PMA")
	require.NoError(t, err)
	assert.Equal(t, "item-2", item.ID)
}

func TestFirstMatchingItemFallsBackToFirst(t *testing.T) {
	items := []ChecklistItem{
		{ID: "item-1", Title: "Fluids"},
		{ID: "item-2", Title: "Brakes"},
	}

	// No title matches: anchor to the first item rather than fail.
	item, err := FirstMatchingItem(items, "PMA")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
}

func TestFirstMatchingItemEmptyList(t *testing.T) {
	_, err := FirstMatchingItem(nil, "PMA")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLookupFailed))
}

func TestHasOilService(t *testing.T) {
	tests := []struct {
		name   string
		detail RODetail
		want   bool
	}{
		{
			name:   "requests text mentions oil filter",
			detail: RODetail{Requests: "oil filter replacement"},
			want:   true,
		},
		{
			name: "labor description mentions synthetic oil",
			detail: RODetail{LaborList: []Labor{
				{ID: "l1", Description: "Full Synthetic Oil Service"},
			}},
			want: true,
		},
		{
			name: "signoff checklist present",
			detail: RODetail{CheckLists: []ChecklistEntry{
				{ID: "c1", Name: "Oil Change Signoff"},
			}},
			want: true,
		},
		{
			name: "nothing oil related",
			detail: RODetail{
				Requests:  "check engine light on",
				LaborList: []Labor{{ID: "l1", Description: "Diagnostics"}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.HasOilService())
		})
	}
}

func TestHasWheelWork(t *testing.T) {
	tests := []struct {
		name   string
		detail RODetail
		want   bool
	}{
		{
			name: "brake labor implies wheel removal",
			detail: RODetail{LaborList: []Labor{
				{ID: "l1", Description: "Brake pad replacement"},
			}},
			want: true,
		},
		{
			name:   "tire in requests",
			detail: RODetail{Requests: "customer wants tire rotation"},
			want:   true,
		},
		{
			name: "signoff checklist present",
			detail: RODetail{CheckLists: []ChecklistEntry{
				{ID: "c1", Name: "Wheel Torque Signoff"},
			}},
			want: true,
		},
		{
			name:   "oil only",
			detail: RODetail{Requests: "oil change"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.HasWheelWork())
		})
	}
}

func TestResolveInspectionTargetStatic(t *testing.T) {
	// Both ids configured: no vendor calls at all.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected vendor call to %s", r.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	laborID, itemID, err := client.ResolveInspectionTarget(context.Background(), "tok", "12345",
		config.InspectionTarget{LaborID: "labor-static", ItemID: "item-static"})
	require.NoError(t, err)
	assert.Equal(t, "labor-static", laborID)
	assert.Equal(t, "item-static", itemID)
}

func TestResolveInspectionTargetDynamic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GetRODetail/12345":
			w.Write([]byte(`{"LaborList": [{"ID": "labor-7", "Description": "PMA Inspection"}]}`))
		case "/GetCheckListItemsV2/labor-7/":
			w.Write([]byte(`[{"ID": "item-3", "Title": "PMA Inspection"}]`))
		default:
			t.Fatalf("unexpected vendor call to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	laborID, itemID, err := client.ResolveInspectionTarget(context.Background(), "tok", "12345",
		config.InspectionTarget{Keyword: "PMA"})
	require.NoError(t, err)
	assert.Equal(t, "labor-7", laborID)
	assert.Equal(t, "item-3", itemID)
}

func TestResolveInspectionTargetNoLabor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"LaborList": [{"ID": "labor-1", "Description": "Oil change"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, _, err := client.ResolveInspectionTarget(context.Background(), "tok", "12345",
		config.InspectionTarget{Keyword: "PMA"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLookupFailed))
}

func TestResolveInspectionTargetEmptyItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GetRODetail/12345":
			w.Write([]byte(`{"LaborList": [{"ID": "labor-7", "Description": "PMA Inspection"}]}`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, _, err := client.ResolveInspectionTarget(context.Background(), "tok", "12345",
		config.InspectionTarget{Keyword: "PMA"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLookupFailed))
}
