// Package config loads and saves the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/garderoba/internal/palette"
)

// Defaults.
const (
	DefaultListen       = ":8080"
	DefaultDatabase     = "garderoba.sqlite3"
	DefaultTimezone     = "Local"
	DefaultUpcomingDays = 7
	DefaultCalendarName = "Outfits"
	DefaultOwner        = "Owner"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address of the API.
	Listen string `yaml:"listen"`

	// Database is the SQLite database path.
	Database string `yaml:"database"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `yaml:"log_file,omitempty"`

	// Timezone is the IANA zone used to decide what "today" is.
	Timezone string `yaml:"timezone"`

	// UpcomingDays is the default number of entries in upcoming views.
	UpcomingDays int `yaml:"upcoming_days"`

	// CalendarName is the name of the exported ICS feed.
	CalendarName string `yaml:"calendar_name"`

	// Owner is the account created on first run.
	Owner string `yaml:"owner"`

	// ColorSeason is the personal color season used until one is saved.
	ColorSeason string `yaml:"color_season"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       DefaultListen,
		Database:     DefaultDatabase,
		Timezone:     DefaultTimezone,
		UpcomingDays: DefaultUpcomingDays,
		CalendarName: DefaultCalendarName,
		Owner:        DefaultOwner,
		ColorSeason:  palette.DefaultSeason,
	}
}

// Normalize fills in missing or invalid values with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.UpcomingDays <= 0 {
		c.UpcomingDays = DefaultUpcomingDays
	}
	if c.CalendarName == "" {
		c.CalendarName = DefaultCalendarName
	}
	if c.Owner == "" {
		c.Owner = DefaultOwner
	}
	if info, ok := palette.LookupSeason(c.ColorSeason); ok {
		c.ColorSeason = info.Name
	} else {
		c.ColorSeason = palette.DefaultSeason
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads the YAML file at path. On first run, when the file does not
// exist, a default file is written with 0600 permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename. The file
// ends up with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".garderoba-config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
