package rowriter

import (
	"context"
	"fmt"
	"strings"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

// Keyword lists for the QC safety detectors. Carried over verbatim from the
// shop's working configuration; wording is what the store's techs actually
// type into labor descriptions.
var (
	oilServiceKeywords = []string{
		"oil change",
		"lube, oil",
		"oil capacity verified",
		"oil filter",
		"synthetic oil",
		"engine oil",
	}

	wheelWorkKeywords = []string{
		"tire",
		"mount and balance",
		"wheel balance",
		"alignment",
		"brake",
		"cv axle",
		"strut",
		"shock",
		"control arm",
		"ball joint",
		"wheel bearing",
		"rim",
		"lug",
		"hub",
	}
)

// FindLaborID returns the id of the first labor whose description contains
// keyword, case-insensitively, in the list's existing order. Empty string
// when no labor matches.
func (d *RODetail) FindLaborID(keyword string) string {
	target := strings.ToLower(keyword)
	for _, labor := range d.LaborList {
		if strings.Contains(strings.ToLower(labor.Description), target) && labor.ID != "" {
			return labor.ID
		}
	}
	return ""
}

// FindChecklist returns the checklist entry whose name equals name,
// case-insensitively, or nil.
func (d *RODetail) FindChecklist(name string) *ChecklistEntry {
	target := strings.ToLower(name)
	for i := range d.CheckLists {
		if strings.ToLower(d.CheckLists[i].Name) == target {
			return &d.CheckLists[i]
		}
	}
	return nil
}

// FirstMatchingItem returns the first item whose title contains keyword,
// case-insensitively. When no title matches it falls back to the first item
// in the list — the weakest-match default, kept deliberately; correctness
// is not guaranteed, only that we anchor to something the vendor returned.
// An empty list is a lookup failure.
func FirstMatchingItem(items []ChecklistItem, keyword string) (*ChecklistItem, error) {
	if len(items) == 0 {
		return nil, errors.NewLookupError("checklist item list is empty")
	}

	target := strings.ToLower(keyword)
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].Title), target) {
			return &items[i], nil
		}
	}

	return &items[0], nil
}

// matchesAnyKeyword reports whether the RO's requests text, any labor
// description, or the named signoff checklist hits the keyword list.
func (d *RODetail) matchesAnyKeyword(keywords []string, signoffChecklist string) bool {
	requests := strings.ToLower(d.Requests)
	for _, k := range keywords {
		if strings.Contains(requests, k) {
			return true
		}
	}

	for _, labor := range d.LaborList {
		desc := strings.ToLower(labor.Description)
		for _, k := range keywords {
			if strings.Contains(desc, k) {
				return true
			}
		}
	}

	for _, cl := range d.CheckLists {
		if strings.Contains(strings.ToLower(cl.Name), signoffChecklist) {
			return true
		}
	}

	return false
}

// HasOilService detects whether this RO involved an oil service.
func (d *RODetail) HasOilService() bool {
	return d.matchesAnyKeyword(oilServiceKeywords, "oil change signoff")
}

// HasWheelWork detects whether any operation requiring wheel torque was
// performed on this RO.
func (d *RODetail) HasWheelWork() bool {
	return d.matchesAnyKeyword(wheelWorkKeywords, "wheel torque signoff")
}

// ResolveInspectionTarget determines the labor and item ids for an
// inspection type.
//
// Priority:
//  1. Static config ids when both are set (quick path, no vendor calls).
//  2. Dynamic: RO detail → labor by keyword → checklist items → item by
//     keyword with fallback to first.
func (c *Client) ResolveInspectionTarget(ctx context.Context, token, roNumber string, target config.InspectionTarget) (string, string, error) {
	if target.LaborID != "" && target.ItemID != "" {
		return target.LaborID, target.ItemID, nil
	}

	detail, err := c.GetRODetail(ctx, token, roNumber)
	if err != nil {
		return "", "", err
	}

	laborID := detail.FindLaborID(target.Keyword)
	if laborID == "" {
		return "", "", errors.NewLookupError(
			fmt.Sprintf("no labor matching %q found for RO %s", target.Keyword, roNumber))
	}

	items, err := c.GetChecklistItems(ctx, token, laborID)
	if err != nil {
		return "", "", err
	}

	item, err := FirstMatchingItem(items, target.Keyword)
	if err != nil {
		return "", "", errors.NewLookupError(
			fmt.Sprintf("no checklist items returned for labor %s on RO %s", laborID, roNumber))
	}

	if item.ID == "" {
		return "", "", errors.NewLookupError(
			fmt.Sprintf("checklist item for labor %s on RO %s has no id", laborID, roNumber))
	}

	return laborID, item.ID, nil
}
