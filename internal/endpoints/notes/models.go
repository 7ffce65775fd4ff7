// internal/endpoints/notes/models.go
package notes

// Input is the /dvi/pma_technician_notes request body.
type Input struct {
	RONumber string `json:"ro_number"`
	LaborID  string `json:"labor_id"`
	Notes    string `json:"notes"`
}

type Output struct {
	OK     bool   `json:"ok"`
	Result string `json:"result"`
}

func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"ro_number": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"labor_id": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"notes": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
		},
		"required": []string{"ro_number", "labor_id", "notes"},
	}
}
