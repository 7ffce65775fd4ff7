package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

// DecodeJSON unmarshals a JSON request body, validates it against schema,
// and decodes it into out. Schema violations and malformed JSON come back
// as INPUT_INVALID errors.
func DecodeJSON(body []byte, schema map[string]interface{}, out interface{}) error {
	var document map[string]interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return errors.NewInputError(fmt.Sprintf("malformed JSON body: %v", err))
	}

	if err := ValidateInput(document, schema); err != nil {
		return errors.NewInputError(err.Error())
	}

	return json.Unmarshal(body, out)
}

// ValidateInput validates a decoded JSON request body against a schema map.
// Returns a human-readable description of every violation found.
func ValidateInput(input map[string]interface{}, schema map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		descriptions = append(descriptions, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(descriptions, "; "))
}

// ObjectSchema builds a plain object schema from property types and a
// required list, the shape every bridge endpoint uses.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
