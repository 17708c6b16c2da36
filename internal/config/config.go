package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/dlcmd/internal/download"
)

// Environment variables read by Load.
const (
	EnvConfig  = "DLCMD_CONFIG"
	EnvSiteDir = "DLCMD_SITE_DIR"
)

// Defaults for unset keys.
const (
	DefaultPluginName   = "download-commands"
	DefaultPollInterval = 5 * time.Second
	DefaultRef          = "HEAD"
)

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// UnmarshalText parses strings like "5s" or "1m30s".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the dlcmd configuration
type Config struct {
	SiteDir      string            `toml:"site_dir" json:"site_dir"`
	PluginName   string            `toml:"plugin_name" json:"plugin_name"`
	PollInterval Duration          `toml:"poll_interval" json:"poll_interval"`
	DefaultRef   string            `toml:"default_ref" json:"default_ref"`
	Schemes      map[string]string `toml:"schemes,omitempty" json:"schemes,omitempty"`
	Theme        ThemeConfig       `toml:"theme" json:"theme"`
}

// ThemeConfig selects the color theme of tables and prompts.
type ThemeConfig struct {
	Name string `toml:"name,omitempty" json:"name,omitempty"` // preset family, see ValidThemeNames
	Mode string `toml:"mode,omitempty" json:"mode,omitempty"` // "auto", "light" or "dark"
}

// ValidThemeNames lists the theme presets.
var ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox"}

// ValidThemeModes lists the theme modes.
var ValidThemeModes = []string{"auto", "light", "dark"}

// Default returns the default configuration
func Default() Config {
	return Config{
		PluginName:   DefaultPluginName,
		PollInterval: Duration(DefaultPollInterval),
		DefaultRef:   DefaultRef,
	}
}

// Interval returns the poll interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollInterval)
}

// DownloadSchemes builds the configured schemes, sorted by name. With none
// configured a "file" scheme rooted at the site directory is returned.
func (c *Config) DownloadSchemes() ([]download.Scheme, error) {
	if len(c.Schemes) == 0 {
		if c.SiteDir == "" {
			return nil, errors.New("no schemes configured and site_dir is not set")
		}
		s, err := download.NewURLScheme("file", "file://"+c.SiteDir)
		if err != nil {
			return nil, err
		}
		return []download.Scheme{s}, nil
	}
	return download.SchemesFromMap(c.Schemes)
}

// RequireSiteDir returns an error if no site directory is configured.
func (c *Config) RequireSiteDir() error {
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir not configured: set it in %s or via %s", displayPath(), EnvSiteDir)
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file path: DLCMD_CONFIG if set, otherwise
// ~/.config/dlcmd/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dlcmd", "config.toml"), nil
}

func displayPath() string {
	if p, err := Path(); err == nil {
		return p
	}
	return "~/.config/dlcmd/config.toml"
}

// Load reads the config file returned by Path and applies env overrides.
// A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return LoadFrom("")
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. An empty path or a missing file yields
// the defaults. Returns error only if the file exists but is invalid.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Default(), fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if dir := os.Getenv(EnvSiteDir); dir != "" {
		cfg.SiteDir = dir
	}

	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// normalize validates cfg, fills empty values with defaults and expands ~.
func (c *Config) normalize() error {
	if err := ValidatePath(c.SiteDir, "site_dir"); err != nil {
		return err
	}
	if c.SiteDir != "" {
		expanded, err := expandPath(c.SiteDir)
		if err != nil {
			return fmt.Errorf("expand site_dir: %w", err)
		}
		c.SiteDir = filepath.Clean(expanded)
	}

	if c.PollInterval < 0 {
		return fmt.Errorf("invalid poll_interval %s: must be positive", time.Duration(c.PollInterval))
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.PluginName == "" {
		c.PluginName = DefaultPluginName
	}
	if c.DefaultRef == "" {
		c.DefaultRef = DefaultRef
	}

	if c.Theme.Name != "" && !slices.Contains(ValidThemeNames, c.Theme.Name) {
		return fmt.Errorf("invalid theme.name %q: must be one of %s", c.Theme.Name, strings.Join(ValidThemeNames, ", "))
	}
	if c.Theme.Mode != "" && !slices.Contains(ValidThemeModes, c.Theme.Mode) {
		return fmt.Errorf("invalid theme.mode %q: must be one of %s", c.Theme.Mode, strings.Join(ValidThemeModes, ", "))
	}

	if _, err := download.SchemesFromMap(c.Schemes); err != nil {
		return fmt.Errorf("invalid schemes: %w", err)
	}
	return nil
}

const defaultConfig = `# dlcmd configuration

# Directory holding the project repositories (<name>.git, bare)
# Must be an absolute path or start with ~
# Can be overridden with DLCMD_SITE_DIR
# site_dir = "~/review/git"

# project.config subsection that holds the download commands:
#   [plugin "download-commands"]
#     checkout = git fetch ${url} ${ref} && git checkout FETCH_HEAD
# plugin_name = "download-commands"

# How often "dlcmd serve" checks refs/meta/config for changes
# poll_interval = "5s"

# Ref substituted for ${ref} when --ref is not given
# default_ref = "HEAD"

# Download schemes: name = base URL, ${url} becomes <base>/<project>
# Without schemes, a "file" scheme pointing at site_dir is used.
#
# [schemes]
# http = "https://review.example.com"
# ssh = "ssh://review.example.com:29418"

# Colors of tables and the interactive picker
# [theme]
# name = "default"  # none, default, dracula, nord, gruvbox
# mode = "auto"     # auto, light, dark
`

// DefaultContent returns the commented default config file.
func DefaultContent() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}

type ctxKey struct{}

// WithConfig returns a new context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}
