package rowriter

import "context"

// SaveChecklist updates a checklist item anchored by a labor id. Returns
// the vendor's raw response text. Calling twice writes twice — the vendor
// does not deduplicate and neither do we.
func (c *Client) SaveChecklist(ctx context.Context, token, roNumber, laborID, itemID, title, comments, condition, roType string) (string, error) {
	if roType == "" {
		roType = DefaultROType
	}

	body := map[string]string{
		"RONumber":  roNumber,
		"LaborID":   laborID,
		"ItemID":    itemID,
		"Title":     title,
		"Comments":  comments,
		"Condition": condition,
		"ROType":    roType,
	}

	return c.postJSON(ctx, token, "SaveChecklist", "/SaveChecklist", body)
}

// SaveChecklistByChecklistID updates an item using a checklist id instead
// of a labor id, the path ISO-type entries without a labor take.
func (c *Client) SaveChecklistByChecklistID(ctx context.Context, token, roNumber, checklistID, itemID, comments, condition, roType string) (string, error) {
	if roType == "" {
		roType = DefaultROType
	}

	body := map[string]string{
		"RONumber":    roNumber,
		"ChecklistID": checklistID,
		"ItemID":      itemID,
		"Comments":    comments,
		"Condition":   condition,
		"ROType":      roType,
	}

	return c.postJSON(ctx, token, "SaveChecklistByChecklistID", "/SaveChecklistByChecklistID", body)
}

// SaveChecklistImageCloud attaches an uploaded media blob to a checklist
// item. ISO entries usually pass an empty laborID.
func (c *Client) SaveChecklistImageCloud(ctx context.Context, token, roNumber, laborID, itemID, blobName, roType string) (string, error) {
	if roType == "" {
		roType = DefaultROType
	}

	body := map[string]interface{}{
		"RONumber":    roNumber,
		"LaborID":     laborID,
		"ItemID":      itemID,
		"ROType":      roType,
		"Media":       []string{blobName},
		"ImageName":   "",
		"Description": "",
	}

	return c.postJSON(ctx, token, "SaveChecklistImageCloud", "/SaveChecklistImageCloud", body)
}

// PrimeISOCommentField creates an empty ISO comment entry so the vendor UI
// has a line to attach content to. ISO treats the checklist id as its own
// item id.
func (c *Client) PrimeISOCommentField(ctx context.Context, token, roNumber, isoChecklistID string) (string, error) {
	return c.SaveChecklistByChecklistID(ctx, token, roNumber, isoChecklistID, isoChecklistID, "", "", DefaultROType)
}
