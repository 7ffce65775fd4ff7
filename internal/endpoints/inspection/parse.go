// internal/endpoints/inspection/parse.go
package inspection

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
	"github.com/TigerTown3661/dvi-bridge/internal/common/validation"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/staging"
)

// jsonInput is the wire shape of the JSON variant. The move flags arrive
// as booleans or form-style strings depending on the client.
type jsonInput struct {
	RONumber       string            `json:"ro_number"`
	Title          string            `json:"title"`
	Comments       string            `json:"comments"`
	Condition      string            `json:"condition"`
	RowID          string            `json:"rowid"`
	MoveToStart    interface{}       `json:"move_to_start"`
	MoveToComplete interface{}       `json:"move_to_complete"`
	ImagePaths     []string          `json:"image_paths"`
	ImagesBase64   []json.RawMessage `json:"images_base64"`
}

type base64Image struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// parseRequest normalizes a JSON or multipart inspection request into an
// Input. The second return value lists temp files staged while parsing;
// the caller must remove them once the request finishes, success or not.
func parseRequest(c echo.Context, cfg *Config) (*Input, []string, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.Contains(contentType, "multipart/form-data") {
		return parseMultipart(c, cfg)
	}
	return parseJSON(c, cfg)
}

func parseMultipart(c echo.Context, cfg *Config) (*Input, []string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, errors.NewInputError(fmt.Sprintf("malformed multipart form: %v", err))
	}

	value := func(key string) string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	input := &Input{
		RONumber:       value("ro_number"),
		Title:          value("title"),
		Comments:       value("comments"),
		Condition:      value("condition"),
		RowID:          value("rowid"),
		MoveToStart:    formBool(value("move_to_start"), cfg.MoveToStartDefault),
		MoveToComplete: formBool(value("move_to_complete"), cfg.MoveToCompleteDefault),
	}

	if input.RONumber == "" {
		return nil, nil, errors.NewInputError("missing required field 'ro_number'")
	}

	var stagedFiles []string
	for _, headers := range form.File {
		for _, header := range headers {
			if header == nil || header.Filename == "" {
				continue
			}

			src, err := header.Open()
			if err != nil {
				staging.Remove(stagedFiles)
				return nil, nil, errors.NewInputError(
					fmt.Sprintf("failed to open uploaded file %s: %v", header.Filename, err))
			}

			path, err := staging.StageReader(src)
			src.Close()
			if err != nil {
				staging.Remove(stagedFiles)
				return nil, nil, err
			}

			stagedFiles = append(stagedFiles, path)
			input.ImagePaths = append(input.ImagePaths, path)
		}
	}

	applyDefaults(input, cfg)
	return input, stagedFiles, nil
}

func parseJSON(c echo.Context, cfg *Config) (*Input, []string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, errors.NewInputError("failed to read request body")
	}

	var raw jsonInput
	if err := validation.DecodeJSON(body, InputSchema(), &raw); err != nil {
		return nil, nil, err
	}

	input := &Input{
		RONumber:       raw.RONumber,
		Title:          raw.Title,
		Comments:       raw.Comments,
		Condition:      raw.Condition,
		RowID:          raw.RowID,
		MoveToStart:    flexibleBool(raw.MoveToStart, cfg.MoveToStartDefault),
		MoveToComplete: flexibleBool(raw.MoveToComplete, cfg.MoveToCompleteDefault),
		ImagePaths:     append([]string(nil), raw.ImagePaths...),
	}

	var stagedFiles []string
	for _, entry := range raw.ImagesBase64 {
		data, decodeErr := decodeBase64Entry(entry)
		if decodeErr != nil {
			// Skip undecodable entries the way the bridge always has;
			// the caller finds out via the image count, not a hard failure.
			continue
		}

		path, err := staging.StageBytes(data)
		if err != nil {
			staging.Remove(stagedFiles)
			return nil, nil, err
		}

		stagedFiles = append(stagedFiles, path)
		input.ImagePaths = append(input.ImagePaths, path)
	}

	applyDefaults(input, cfg)
	return input, stagedFiles, nil
}

func decodeBase64Entry(entry json.RawMessage) ([]byte, error) {
	var asString string
	if err := json.Unmarshal(entry, &asString); err == nil {
		return base64.StdEncoding.DecodeString(asString)
	}

	var asObject base64Image
	if err := json.Unmarshal(entry, &asObject); err != nil {
		return nil, err
	}
	if asObject.Data == "" {
		return nil, fmt.Errorf("base64 image entry has no data")
	}
	return base64.StdEncoding.DecodeString(asObject.Data)
}

func applyDefaults(input *Input, cfg *Config) {
	if input.Title == "" {
		input.Title = cfg.Target.Title
	}
}

// formBool normalizes the truthy strings form clients send.
func formBool(val string, def bool) bool {
	if val == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// flexibleBool accepts JSON booleans and form-style strings.
func flexibleBool(val interface{}, def bool) bool {
	switch v := val.(type) {
	case nil:
		return def
	case bool:
		return v
	case string:
		return formBool(v, def)
	default:
		return def
	}
}
