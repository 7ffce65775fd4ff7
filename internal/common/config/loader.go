// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like DVI_USERNAME
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		_ = v.MergeInConfig() // ignore error if not found
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root so
// credentials stay out of the yaml files.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills credential fields from the environment when the
// yaml left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.DVI.Username == "" {
		if val := os.Getenv("DVI_USERNAME"); val != "" {
			cfg.DVI.Username = val
		}
	}
	if cfg.DVI.Password == "" {
		if val := os.Getenv("DVI_PASSWORD"); val != "" {
			cfg.DVI.Password = val
		}
	}
	if cfg.DVI.CIMCode == "" {
		if val := os.Getenv("DVI_CIM_CODE"); val != "" {
			cfg.DVI.CIMCode = val
		}
	}
	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			var port int
			if _, err := fmt.Sscanf(val, "%d", &port); err == nil {
				cfg.Server.Port = port
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dvi-bridge"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8010
	}

	if cfg.DVI.DataServer == "" {
		cfg.DVI.DataServer = "20"
	}
	if cfg.DVI.TouchVersion == "" {
		cfg.DVI.TouchVersion = "Touch for iOS"
	}
	if cfg.DVI.PushID == "" {
		cfg.DVI.PushID = "GoBridge"
	}
	if cfg.DVI.RequestTimeout == 0 {
		cfg.DVI.RequestTimeout = 15000
	}
	if cfg.DVI.MediaTimeout == 0 {
		cfg.DVI.MediaTimeout = 60000
	}
	if len(cfg.DVI.RowIDPages) == 0 {
		cfg.DVI.RowIDPages = []string{"Checklist.aspx", "EditChecklist.aspx"}
	}

	if cfg.Inspections.ISO.Keyword == "" {
		cfg.Inspections.ISO.Keyword = "ISO"
	}
	if cfg.Inspections.ISO.Title == "" {
		cfg.Inspections.ISO.Title = "ISO Vehicle Inspection"
	}
	if cfg.Inspections.PMA.Keyword == "" {
		cfg.Inspections.PMA.Keyword = "PMA"
	}
	if cfg.Inspections.PMA.Title == "" {
		cfg.Inspections.PMA.Title = "PMA Inspection"
	}
	if cfg.Inspections.TechNotesItemID == "" {
		cfg.Inspections.TechNotesItemID = "791b5ee9-3a37-4a09-b866-07cdf9412268"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.DVI.APIBase == "" {
		return fmt.Errorf("dvi.api_base is required")
	}
	if cfg.DVI.MediaBase == "" {
		return fmt.Errorf("dvi.media_base is required")
	}
	if cfg.DVI.PageBase == "" {
		return fmt.Errorf("dvi.page_base is required")
	}
	if cfg.DVI.Username == "" {
		return fmt.Errorf("dvi.username is required")
	}
	if cfg.DVI.Password == "" {
		return fmt.Errorf("dvi.password is required")
	}
	if cfg.DVI.CIMCode == "" {
		return fmt.Errorf("dvi.cim_code is required")
	}

	return nil
}
