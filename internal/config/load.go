package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Project config file names, searched in the working directory.
var projectFiles = []string{"tada.toml", ".tada.toml"}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/tada/config.toml or OS equivalent)
// 3. Project config file (tada.toml or .tada.toml in the working directory)
// 4. Environment variables (TADA_*)
// 5. CLI flags
//
// -config replaces steps 2 and 3 with a single explicit file.
// Positional arguments remain available through fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}
	fl := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := Default()

	files := []string{}
	if fl.config != "" {
		files = append(files, expandPath(fl.config))
	} else {
		if p := userConfigFile(); p != "" {
			files = append(files, p)
		}
		if p := projectConfigFile(); p != "" {
			files = append(files, p)
		}
	}
	for _, p := range files {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
		cfg.Files = append(cfg.Files, p)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	fl.apply(cfg, fs)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "tada", "config.toml")
	if fileExists(p) {
		return p
	}
	return ""
}

func projectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range projectFiles {
		p := filepath.Join(wd, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !st.IsDir()
}

// loadFromEnv overrides cfg from TADA_* variables.
func loadFromEnv(cfg *Config) error {
	strs := []struct {
		name   string
		target *string
	}{
		{"TADA_STORAGE", &cfg.Storage.Driver},
		{"TADA_DATA_DIR", &cfg.Storage.Dir},
		{"TADA_KEY", &cfg.Storage.Key},
		{"TADA_SQLITE_PATH", &cfg.Storage.SQLitePath},
		{"TADA_LOG_LEVEL", &cfg.Log.Level},
		{"TADA_LOG_FORMAT", &cfg.Log.Format},
		{"TADA_THEME", &cfg.UI.Theme},
	}
	for _, s := range strs {
		if v := os.Getenv(s.name); v != "" {
			*s.target = v
		}
	}
	if v := os.Getenv("TADA_GROUP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TADA_GROUP %q", ErrInvalid, v)
		}
		cfg.UI.Group = b
	}
	return nil
}

type flagValues struct {
	config   string
	group    bool
	driver   string
	dir      string
	theme    string
	logLevel string
}

func bindFlags(fs *flag.FlagSet) *flagValues {
	fl := &flagValues{}
	fs.StringVar(&fl.config, "config", "", "read configuration from this TOML file only")
	fs.BoolVar(&fl.group, "group", false, "group output by pending/done")
	fs.StringVar(&fl.driver, "storage", "", "storage driver: file, sqlite or memory")
	fs.StringVar(&fl.dir, "dir", "", "data directory for the file driver")
	fs.StringVar(&fl.theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&fl.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return fl
}

// apply copies only the flags that were set on the command line.
func (fl *flagValues) apply(cfg *Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "group":
			cfg.UI.Group = fl.group
		case "storage":
			cfg.Storage.Driver = fl.driver
		case "dir":
			cfg.Storage.Dir = fl.dir
		case "theme":
			cfg.UI.Theme = fl.theme
		case "log-level":
			cfg.Log.Level = fl.logLevel
		}
	})
}
