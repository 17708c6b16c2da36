// Package config handles loading and validation of dlcmd configuration.
//
// Configuration is read from ~/.config/dlcmd/config.toml (or the file named
// by DLCMD_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - DLCMD_SITE_DIR env var: directory holding the <project>.git repositories
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - site_dir: site directory (must be absolute or ~/...)
//   - plugin_name: project.config subsection read for commands (default: "download-commands")
//   - poll_interval: how often serve checks refs/meta/config (default: "5s")
//   - default_ref: ref substituted for ${ref} when none is given (default: "HEAD")
//
// # Schemes
//
// The [schemes] table maps a scheme name to the base URL projects are
// downloaded from:
//
//	[schemes]
//	http = "https://review.example.com"
//	ssh = "ssh://review.example.com:29418"
//
// Without schemes, a single "file" scheme pointing at site_dir is used.
//
// # Theme
//
// The [theme] table selects the color preset (name) and light/dark
// variant (mode) for tables and prompts.
package config
