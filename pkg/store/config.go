package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath = "~/.plancal.db"

	// ColorAuto enables colour only when writing to a terminal.
	ColorAuto = "auto"
	// ColorAlways forces colour output.
	ColorAlways = "always"
	// ColorNever disables colour output.
	ColorNever = "never"
)

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
	Samples() bool
	Color() string
	LogLevel() string
}

// LoadConfig reads .plancal.yaml from PLANCAL_CONFIG_PATH or the working
// directory, overlaid with PLANCAL_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("samples", true)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("log-level", "warn")
	v.SetConfigName(".plancal") // .yaml is implicit
	v.SetEnvPrefix("PLANCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("PLANCAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	color := strings.ToLower(strings.TrimSpace(v.GetString("color")))
	switch color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("store: color must be auto, always or never, got %q", color)
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:         path,
		ShowSamples:  v.GetBool("samples"),
		ColorMode:    color,
		LoggingLevel: v.GetString("log-level"),
	}, nil
}

type fileConfig struct {
	Path         string `json:"path"`
	ShowSamples  bool   `json:"samples"`
	ColorMode    string `json:"color"`
	LoggingLevel string `json:"logLevel"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) Samples() bool    { return f.ShowSamples }
func (f *fileConfig) Color() string    { return f.ColorMode }
func (f *fileConfig) LogLevel() string { return f.LoggingLevel }

// StaticConfig is a Config built in code, mainly for tests and embedding.
type StaticConfig struct {
	Path         string
	ShowSamples  bool
	ColorMode    string
	LoggingLevel string
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Samples() bool    { return s.ShowSamples }
func (s StaticConfig) LogLevel() string { return s.LoggingLevel }

func (s StaticConfig) Color() string {
	if s.ColorMode == "" {
		return ColorAuto
	}
	return s.ColorMode
}
