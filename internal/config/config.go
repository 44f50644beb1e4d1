// Package config loads tada settings from TOML files, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults.
const (
	DefaultDriver     = "file"
	DefaultDir        = "."
	DefaultKey        = "todos"
	DefaultSQLitePath = "tada.db"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultTheme      = "classic"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the merged configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	UI      UI      `toml:"ui"`

	// Files lists the config files that were applied, in order.
	Files []string `toml:"-"`
}

type Storage struct {
	Driver     string `toml:"driver"`
	Dir        string `toml:"dir"`
	Key        string `toml:"key"`
	SQLitePath string `toml:"sqlite_path"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type UI struct {
	Theme string `toml:"theme"`
	Group bool   `toml:"group"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Driver:     DefaultDriver,
			Dir:        DefaultDir,
			Key:        DefaultKey,
			SQLitePath: DefaultSQLitePath,
		},
		Log: Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
		UI:  UI{Theme: DefaultTheme},
	}
}

// Validate checks enumerated values and required fields.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q (want file, sqlite or memory)", ErrInvalid, c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("%w: storage.key is empty", ErrInvalid)
	}
	switch c.UI.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("%w: ui.theme %q (want classic, neon or mono)", ErrInvalid, c.UI.Theme)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: log.level %q (want debug, info, warn, error or fatal)", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("%w: log.format %q (want text, json or logfmt)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// normalize lowercases enums and expands ~ in paths.
func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Storage.Dir = expandPath(c.Storage.Dir)
	c.Storage.SQLitePath = expandPath(c.Storage.SQLitePath)
}
