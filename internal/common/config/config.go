// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
// It is built once at process start and passed by reference; nothing
// mutates it afterwards.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	DVI         DVIConfig         `mapstructure:"dvi"`
	Inspections InspectionsConfig `mapstructure:"inspections"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DVIConfig holds the R.O. Writer DVI vendor endpoints and credentials.
type DVIConfig struct {
	APIBase   string `mapstructure:"api_base"`   // JSON API host
	MediaBase string `mapstructure:"media_base"` // blob storage host
	PageBase  string `mapstructure:"page_base"`  // web-form page host

	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	CIMCode      string `mapstructure:"cim_code"`
	DataServer   string `mapstructure:"data_server"`
	TouchVersion string `mapstructure:"touch_version"`
	PushID       string `mapstructure:"push_id"`

	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds, JSON calls
	MediaTimeout   int `mapstructure:"media_timeout"`   // milliseconds, blob uploads

	// RowID candidate pages, tried in order, relative to PageBase.
	RowIDPages []string `mapstructure:"rowid_pages"`
}

// InspectionTarget carries the checklist identifiers for one inspection
// type. LaborID/ItemID are static overrides; when either is empty the
// target is resolved dynamically from the RO detail using Keyword.
type InspectionTarget struct {
	LaborID     string `mapstructure:"labor_id"`
	ItemID      string `mapstructure:"item_id"`
	ChecklistID string `mapstructure:"checklist_id"`
	Keyword     string `mapstructure:"keyword"`
	Title       string `mapstructure:"title"`
}

type InspectionsConfig struct {
	ISO InspectionTarget `mapstructure:"iso"`
	PMA InspectionTarget `mapstructure:"pma"`

	// Item the /dvi/pma_technician_notes endpoint writes to.
	TechNotesItemID string `mapstructure:"tech_notes_item_id"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RequestTimeoutDuration returns the JSON-call timeout as a time.Duration.
func (d DVIConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(d.RequestTimeout) * time.Millisecond
}

// MediaTimeoutDuration returns the blob-upload timeout as a time.Duration.
func (d DVIConfig) MediaTimeoutDuration() time.Duration {
	return time.Duration(d.MediaTimeout) * time.Millisecond
}
