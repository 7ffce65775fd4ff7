package rowriter

import "context"

// ChangeStatus moves a repair order to the given status code.
// The vendor's raw response body is returned unchanged; it is often a
// plain string rather than JSON. No client-side validation of the
// transition — an illegal move is the vendor's call to reject.
func (c *Client) ChangeStatus(ctx context.Context, token, roNumber, status, roType string) (string, error) {
	if roType == "" {
		roType = DefaultROType
	}

	body := map[string]string{
		"RONumber": roNumber,
		"Status":   status,
		"Type":     roType,
	}

	return c.postJSON(ctx, token, "ChangeStatus", "/ChangeStatus", body)
}
