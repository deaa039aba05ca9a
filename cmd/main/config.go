package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/natefinch/atomic"

	"github.com/CTAG07/lodexport/pkg/lexicon"
	"github.com/CTAG07/lodexport/pkg/templating"
)

// AppConfig holds process-level settings.
type AppConfig struct {
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
	// DatabaseURL is a SQLite data source. SQLAlchemy-style "sqlite:///path"
	// URLs are accepted as well.
	DatabaseURL string `json:"database_url" env:"LOD_DATABASE_URL"`
}

// ExportConfig holds the settings of the generated documents.
type ExportConfig struct {
	// ExportDir is prepended to every output file name. It is created when
	// missing.
	ExportDir string `json:"export_dir" env:"HTML_EXPORT_DIRECTORY_PATH_LOCAL"`
	// Style is used for documents requested without a style. The CLI always
	// passes --style (default normal), so it only applies to library callers.
	Style string `json:"default_style" env:"DEFAULT_STYLE"`
	// Language is the key language of the English-side dictionary.
	Language string `json:"default_language" env:"DEFAULT_LANGUAGE"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	App       AppConfig                 `json:"app_config"`
	Export    ExportConfig              `json:"export_config"`
	Templates templating.TemplateConfig `json:"template_config"`
}

// DefaultAppConfig creates an app configuration with default values.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogLevel:    "info",
		DatabaseURL: "./lod.db",
	}
}

// DefaultExportConfig creates an export configuration with default values.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		ExportDir: "",
		Style:     string(lexicon.StyleUltra),
		Language:  "en",
	}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		App:       DefaultAppConfig(),
		Export:    DefaultExportConfig(),
		Templates: templating.DefaultConfig(),
	}
}

// LoadConfig reads the configuration from a JSON file at the given path and
// then applies environment overrides. If the file doesn't exist, it creates
// one with default values.
// Priority: ENV > JSON > defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		var data []byte
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// The exporter can still run with defaults.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err = json.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate checks the values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if _, err := lexicon.ParseStyle(c.Export.Style); err != nil {
		return fmt.Errorf("export_config.default_style: %w", err)
	}
	if strings.TrimSpace(c.Export.Language) == "" {
		return errors.New("export_config.default_language must not be empty")
	}
	if _, err := parseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("app_config.log_level: %w", err)
	}
	if c.App.DatabaseURL == "" {
		return errors.New("app_config.database_url must not be empty")
	}
	return nil
}

// parseLevel converts a log level name into a slog.Level. An empty name is
// info.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// dataSource turns a configured database URL into a driver data source.
// "sqlite://" alone is an in-memory database.
func dataSource(url string) string {
	switch {
	case url == "sqlite://":
		return ":memory:"
	case strings.HasPrefix(url, "sqlite:///"):
		return strings.TrimPrefix(url, "sqlite:///")
	}
	return url
}
