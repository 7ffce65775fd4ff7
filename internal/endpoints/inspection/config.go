// internal/endpoints/inspection/config.go
package inspection

import "github.com/TigerTown3661/dvi-bridge/internal/common/config"

// Config holds the per-inspection-type settings. ISO and PMA run the same
// handler with different targets, statuses, and defaults.
type Config struct {
	Endpoint string
	Target   config.InspectionTarget

	StartStatus    string
	CompleteStatus string
	CompleteKey    string // key used in the status_changes response map

	MoveToStartDefault    bool
	MoveToCompleteDefault bool
}

// ISOConfig builds the /dvi/iso_inspection settings: start status 3,
// complete status 4, both transitions on by default.
func ISOConfig(inspections config.InspectionsConfig) *Config {
	return &Config{
		Endpoint:              "/dvi/iso_inspection",
		Target:                inspections.ISO,
		StartStatus:           "3",
		CompleteStatus:        "4",
		CompleteKey:           "iso_complete",
		MoveToStartDefault:    true,
		MoveToCompleteDefault: true,
	}
}

// PMAConfig builds the /dvi/pma_inspection settings: complete status 5,
// start transition off by default.
func PMAConfig(inspections config.InspectionsConfig) *Config {
	return &Config{
		Endpoint:              "/dvi/pma_inspection",
		Target:                inspections.PMA,
		StartStatus:           "3",
		CompleteStatus:        "5",
		CompleteKey:           "pma_complete",
		MoveToStartDefault:    false,
		MoveToCompleteDefault: true,
	}
}
