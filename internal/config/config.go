// Package config loads runtime settings for the fosterdocs binaries from an
// optional YAML file overlaid with FOSTERDOCS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fosterdocs/pkg/copies"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
)

// Config is the full runtime configuration.
type Config struct {
	Server Server `yaml:"server"`
	Export Export `yaml:"export"`
	Copies Copies `yaml:"copies"`
	Agency Agency `yaml:"agency"`
	Log    Log    `yaml:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string `yaml:"addr"`
}

// Export configures the PDF pipeline.
type Export struct {
	OutputDir   string  `yaml:"outputDir"`
	Creator     string  `yaml:"creator"`
	Author      string  `yaml:"author"`
	MarginMM    float64 `yaml:"marginMM"`
	JPEGQuality int     `yaml:"jpegQuality"`
}

// Copies points at a copy policy table. Empty uses the embedded table.
type Copies struct {
	PolicyPath string `yaml:"policyPath"`
}

// Agency overrides the letterhead printed on every document.
type Agency struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{Addr: ":8080"},
		Export: Export{OutputDir: "exports", Creator: pdf.CreatorName},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path (when non-empty) over the defaults and then applies the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg = FromEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overlays FOSTERDOCS_* variables onto base.
func FromEnv(base Config, getenv func(string) string) Config {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&base.Server.Addr, "FOSTERDOCS_ADDR")
	set(&base.Export.OutputDir, "FOSTERDOCS_OUTPUT_DIR")
	set(&base.Export.Creator, "FOSTERDOCS_CREATOR")
	set(&base.Export.Author, "FOSTERDOCS_AUTHOR")
	set(&base.Copies.PolicyPath, "FOSTERDOCS_COPY_POLICY")
	set(&base.Agency.Name, "FOSTERDOCS_AGENCY_NAME")
	set(&base.Agency.Address, "FOSTERDOCS_AGENCY_ADDRESS")
	set(&base.Agency.Phone, "FOSTERDOCS_AGENCY_PHONE")
	set(&base.Log.Level, "FOSTERDOCS_LOG_LEVEL")
	set(&base.Log.Format, "FOSTERDOCS_LOG_FORMAT")

	if v := strings.TrimSpace(getenv("FOSTERDOCS_MARGIN_MM")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			base.Export.MarginMM = n
		}
	}
	if v := strings.TrimSpace(getenv("FOSTERDOCS_JPEG_QUALITY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			base.Export.JPEGQuality = n
		}
	}
	return base
}

// Validate rejects settings the binaries cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Export.MarginMM < 0 {
		errs = append(errs, errors.New("export.marginMM must not be negative"))
	}
	if q := c.Export.JPEGQuality; q < 0 || q > 100 {
		errs = append(errs, fmt.Errorf("export.jpegQuality %d is outside 0-100", q))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PDFSettings maps the export section onto renderer settings.
func (c Config) PDFSettings() pdf.Settings {
	return pdf.Settings{
		MarginMM:    c.Export.MarginMM,
		JPEGQuality: c.Export.JPEGQuality,
	}
}

// Letterhead returns the agency override.
func (c Config) Letterhead() layout.Letterhead {
	return layout.Letterhead{
		Agency:  c.Agency.Name,
		Address: c.Agency.Address,
		Phone:   c.Agency.Phone,
	}
}

// CopyTable loads the configured copy policy or the embedded one.
func (c Config) CopyTable() (copies.Table, error) {
	if strings.TrimSpace(c.Copies.PolicyPath) == "" {
		return copies.Embedded()
	}
	data, err := os.ReadFile(c.Copies.PolicyPath)
	if err != nil {
		return copies.Table{}, fmt.Errorf("config: read copy policy: %w", err)
	}
	return copies.LoadYAML(data)
}

// Logger builds the slog logger described by the log section.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(level) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not a slog level", level)
	}
	return l, nil
}
