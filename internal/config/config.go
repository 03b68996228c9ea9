// Package config handles the XDG configuration directory and config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "gtodo"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.toml"

	// LogFile is where the TUI writes its logs.
	LogFile = "gtodo.log"

	// DefaultAPIURL is the base location of the remote collection.
	DefaultAPIURL = "http://localhost:8000"
)

// Environment overrides.
const (
	EnvAPIURL = "GTODO_API_URL"
	EnvTheme  = "GTODO_THEME"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// APIURL is the base URL; requests go to APIURL + "/todos/".
	APIURL string `toml:"api_url"`

	// Theme is the initial TUI theme: "light" or "dark".
	Theme string `toml:"theme"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFormat is one of text, json, logfmt.
	LogFormat string `toml:"log_format"`

	// Timeout bounds each request. Zero means no timeout.
	Timeout Duration `toml:"timeout"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// Duration decodes Go duration strings such as "5s" from TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a Config populated with built-in defaults.
func Default(dir string) *Config {
	return &Config{
		Dir:       dir,
		APIURL:    DefaultAPIURL,
		Theme:     "light",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/gtodo or $HOME/.config/gtodo.
// Values come from defaults, then config.toml (if present), then environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	OverrideFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadFile decodes config.toml over the current values.
// A missing file is not an error.
func (c *Config) loadFile() error {
	_, err := toml.DecodeFile(c.FilePath(), c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return nil
}

// OverrideFromEnv applies GTODO_* environment variables.
func OverrideFromEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url: %q", c.APIURL)
	}
	switch strings.ToLower(c.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid theme: %q (want light or dark)", c.Theme)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout.Duration)
	}
	return nil
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path to the TUI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
