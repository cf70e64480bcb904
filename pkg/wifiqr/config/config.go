// Package config loads wifiqr settings and maintains the recent-files
// store. Keyword tables, property aliases, logo assets, and canvas
// geometry are configuration data rather than code; deployments override
// them here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/render"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/sheet"
)

// appDirName is the per-user directory holding config and the
// recent-files store.
const appDirName = ".wifiqr"

// CanvasConfig describes the fixed output canvas.
type CanvasConfig struct {
	Width     int `mapstructure:"width"`
	Height    int `mapstructure:"height"`
	TopMargin int `mapstructure:"top_margin"`
}

// Config is the persisted application configuration.
type Config struct {
	OutputDir       string              `mapstructure:"output_dir"`
	DefaultSecurity string              `mapstructure:"default_security"`
	DefaultProperty string              `mapstructure:"default_property"`
	StopOnError     bool                `mapstructure:"stop_on_error"`
	QRScale         int                 `mapstructure:"qr_scale"`
	LogoDivisor     float64             `mapstructure:"logo_divisor"`
	FontPath        string              `mapstructure:"font_path"`
	Canvas          CanvasConfig        `mapstructure:"canvas"`
	Logos           map[string]string   `mapstructure:"logos"`
	PropertyAliases map[string]string   `mapstructure:"property_aliases"`
	Keywords        map[string][]string `mapstructure:"keywords"`
	LogLevel        string              `mapstructure:"log_level"`
	LogJSON         bool                `mapstructure:"log_json"`
}

// Load reads configuration, layering file values over defaults. With an
// empty path it searches for wifiqr.yaml in the working directory and the
// user's ~/.wifiqr directory; a missing file is not an error then. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("wifiqr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, appDirName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", wifiqr.DefaultOutputDir)
	v.SetDefault("default_security", models.SecurityWPA2)
	v.SetDefault("qr_scale", render.DefaultQRScale)
	v.SetDefault("logo_divisor", render.DefaultLogoDivisor)
	v.SetDefault("canvas.width", render.DefaultCanvasWidth)
	v.SetDefault("canvas.height", render.DefaultCanvasHeight)
	v.SetDefault("canvas.top_margin", render.DefaultTopMargin)
	v.SetDefault("logos", render.DefaultLogos())
	v.SetDefault("property_aliases", render.DefaultAliases())
	v.SetDefault("log_level", "info")
}

// Options converts the loaded configuration into generation options. An
// empty keywords section keeps the shipped locale union.
func (c *Config) Options() (wifiqr.Options, error) {
	opts := wifiqr.DefaultOptions()
	if c.OutputDir != "" {
		opts.OutputDir = c.OutputDir
	}
	if c.DefaultSecurity != "" {
		opts.DefaultSecurity = c.DefaultSecurity
	}
	opts.DefaultProperty = c.DefaultProperty
	opts.StopOnError = c.StopOnError

	if len(c.Keywords) > 0 {
		table, err := sheet.ParseKeywords(c.Keywords)
		if err != nil {
			return wifiqr.Options{}, fmt.Errorf("config keywords: %w", err)
		}
		opts.Keywords = table
	}

	r := &opts.Render
	if c.QRScale > 0 {
		r.QRScale = c.QRScale
	}
	if c.LogoDivisor > 0 {
		r.LogoDivisor = c.LogoDivisor
	}
	if c.Canvas.Width > 0 && c.Canvas.Height > 0 {
		r.CanvasWidth = c.Canvas.Width
		r.CanvasHeight = c.Canvas.Height
	}
	if c.Canvas.TopMargin > 0 {
		r.TopMargin = c.Canvas.TopMargin
	}
	if len(c.Logos) > 0 {
		r.Logos = normalizeKeys(c.Logos)
	}
	if len(c.PropertyAliases) > 0 {
		r.Aliases = normalizeKeys(c.PropertyAliases)
	}
	r.FontPath = c.FontPath
	return opts, nil
}

// normalizeKeys upper-cases map keys; alias and logo lookups are
// case-insensitive on the raw tag side.
func normalizeKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, val := range in {
		out[strings.ToUpper(k)] = val
	}
	return out
}
