package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/courseatlas/atlas-engine/pkg/apperrors"
)

// Config holds all configuration for atlas-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (connection strings with credentials) must only come from environment
// variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// Source documents
	Sources SourcesConfig `yaml:"sources"`

	// Export outputs
	Export ExportConfig `yaml:"export"`

	// Optional bulk load into a live database
	Load LoadConfig `yaml:"load"`
}

// SourcesConfig holds the paths of the three input documents.
type SourcesConfig struct {
	Professors string `yaml:"professors" env:"SOURCE_PROFESSORS" env-default:"data/professors.json"`
	Courses    string `yaml:"courses" env:"SOURCE_COURSES" env-default:"data/courses.json"`
	Ratings    string `yaml:"ratings" env:"SOURCE_RATINGS" env-default:"data/ratings.json"`
}

// ExportConfig controls the generated SQL script and tabular dump.
type ExportConfig struct {
	// Dialect selects how the script is rendered: postgres or sqlserver.
	Dialect string `yaml:"dialect" env:"EXPORT_DIALECT" env-default:"postgres"`

	// ScriptPath is where the full SQL script is written.
	ScriptPath string `yaml:"script_path" env:"EXPORT_SCRIPT_PATH" env-default:"out/atlas.sql"`

	// TabularDir receives one CSV file per table.
	TabularDir string `yaml:"tabular_dir" env:"EXPORT_TABULAR_DIR" env-default:"out/tables"`

	// BatchSize is the number of rows per INSERT statement.
	BatchSize int `yaml:"batch_size" env:"EXPORT_BATCH_SIZE" env-default:"500"`
}

// LoadConfig holds the optional upload target. When DSN is empty the
// pipeline stops after writing the export files.
type LoadConfig struct {
	// DSN is the target connection string. Secret - not in YAML.
	DSN string `yaml:"-" env:"LOAD_DSN"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml does not exist, configuration comes from
// environment variables and defaults alone. The version parameter is
// injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sources.Professors == "" || c.Sources.Courses == "" || c.Sources.Ratings == "" {
		return apperrors.ErrMissingSource
	}
	if c.Export.Dialect != "postgres" && c.Export.Dialect != "sqlserver" {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownDialect, c.Export.Dialect)
	}
	if c.Export.BatchSize <= 0 {
		return fmt.Errorf("export batch_size must be positive, got %d", c.Export.BatchSize)
	}
	return nil
}
