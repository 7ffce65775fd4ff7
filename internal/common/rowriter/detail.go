package rowriter

import (
	"context"
	"fmt"
)

// GetRODetail fetches the repair order's full detail: labor lines,
// checklist entries, and the free-text requests field.
func (c *Client) GetRODetail(ctx context.Context, token, roNumber string) (*RODetail, error) {
	var detail RODetail
	path := fmt.Sprintf("/GetRODetail/%s", roNumber)
	if err := c.getJSON(ctx, token, "GetRODetail", path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetChecklistItems fetches the checklist items for a labor operation.
func (c *Client) GetChecklistItems(ctx context.Context, token, laborID string) ([]ChecklistItem, error) {
	var payload checklistItemsPayload
	path := fmt.Sprintf("/GetCheckListItemsV2/%s/", laborID)
	if err := c.getJSON(ctx, token, "GetCheckListItemsV2", path, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}
