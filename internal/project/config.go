package project

import (
	"errors"

	"github.com/raphi011/dlcmd/internal/git"
)

// ErrConfigInvalid is returned when project.config exists but cannot be parsed.
var ErrConfigInvalid = errors.New("invalid project configuration")

// Config is a project configuration snapshot at one revision.
type Config struct {
	Revision string
	entries  []git.ConfigEntry
}

// NewConfig builds a snapshot from parsed entries.
func NewConfig(revision string, entries []git.ConfigEntry) *Config {
	return &Config{Revision: revision, entries: entries}
}

// PluginConfig returns the [plugin "<name>"] section. A missing section is empty.
func (c *Config) PluginConfig(pluginName string) PluginConfig {
	pc := PluginConfig{values: make(map[string]string)}
	if c == nil {
		return pc
	}
	for _, e := range c.entries {
		if e.Section != "plugin" || e.Subsection != pluginName {
			continue
		}
		if _, seen := pc.values[e.Name]; !seen {
			pc.names = append(pc.names, e.Name)
		}
		// last one wins, like git config --get
		pc.values[e.Name] = e.Value
	}
	return pc
}

// PluginConfig is the flat name = value section owned by one plugin.
type PluginConfig struct {
	names  []string
	values map[string]string
}

// Names returns the configured names in order of first appearance.
func (p PluginConfig) Names() []string {
	return append([]string(nil), p.names...)
}

// String returns the value of name, or "" if it is not set.
func (p PluginConfig) String(name string) string {
	return p.values[name]
}

// Len returns the number of configured names.
func (p PluginConfig) Len() int {
	return len(p.names)
}
