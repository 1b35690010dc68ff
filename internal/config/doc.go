// Package config loads, normalizes, and validates the worldfeed TOML
// configuration. Defaults target a per-user installation under
// ~/.local/share/worldfeed with the config file at
// ~/.config/worldfeed/config.toml.
package config
