// Package config provides the configuration system for jot.
//
// Settings are layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (JOT_*)     │
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/jot/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The settings file is TOML unless it ends in .yaml or .yml. A TOML file
// may pull in other TOML files with an "@include" key.
// Reading goes through the typed getters or Settings, which validates
// every value at once:
//
//	cfg := config.New(config.WithConfigFile(path))
//	if err := cfg.Load(); err != nil {
//		return err
//	}
//	s, err := cfg.Settings()
package config
