// internal/endpoints/status/models.go
package status

// Input is the request body shared by every status-only endpoint.
type Input struct {
	RONumber string `json:"ro_number"`
	ROType   string `json:"ro_type,omitempty"`
}

// Output is the response for a successful status change. Raw is the
// vendor's response body, passed through unchanged.
type Output struct {
	OK        bool   `json:"ok"`
	RONumber  string `json:"ro_number"`
	NewStatus string `json:"new_status"`
	Raw       string `json:"raw"`
}

// InputSchema validates the status-change request body.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"ro_number": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"ro_type": map[string]interface{}{
				"type": "string",
			},
		},
		"required": []string{"ro_number"},
	}
}
