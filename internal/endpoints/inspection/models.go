// internal/endpoints/inspection/models.go
package inspection

// Input is the normalized inspection request, whether it arrived as JSON
// or multipart/form-data. ImagePaths holds every local path to upload:
// staged multipart files, staged base64 decodes, and caller-supplied paths.
type Input struct {
	RONumber  string
	Title     string
	Comments  string
	Condition string
	RowID     string

	MoveToStart    bool
	MoveToComplete bool

	ImagePaths []string
}

// Output is the aggregated inspection result. UploadErrors collects
// per-image failures; the response stays ok:true when the non-image steps
// succeeded, so callers must inspect the list.
type Output struct {
	OK            bool              `json:"ok"`
	RONumber      string            `json:"ro_number"`
	Title         string            `json:"title"`
	LaborID       string            `json:"labor_id"`
	ItemID        string            `json:"item_id"`
	Blobs         []string          `json:"blobs"`
	UploadErrors  []string          `json:"upload_errors"`
	Checklist     string            `json:"checklist"`
	StatusChanges map[string]string `json:"status_changes"`
}

// InputSchema validates the JSON variant of the inspection request. The
// move flags accept booleans or the form-style strings clients actually
// send; images_base64 entries are bare strings or {filename, data} objects.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"ro_number": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"title":     map[string]interface{}{"type": "string"},
			"comments":  map[string]interface{}{"type": "string"},
			"condition": map[string]interface{}{"type": "string"},
			"rowid":     map[string]interface{}{"type": "string"},
			"move_to_start": map[string]interface{}{
				"type": []interface{}{"boolean", "string"},
			},
			"move_to_complete": map[string]interface{}{
				"type": []interface{}{"boolean", "string"},
			},
			"image_paths": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"images_base64": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": []interface{}{"string", "object"},
				},
			},
		},
		"required": []string{"ro_number"},
	}
}
