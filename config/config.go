package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "exek"

// Config holds the launcher settings.
type Config struct {
	DatabasePath    string   `mapstructure:"database_path"`
	LogFile         string   `mapstructure:"log_file"`
	LogLevel        string   `mapstructure:"log_level"`
	ApplicationDirs []string `mapstructure:"application_dirs"`
	Terminals       []string `mapstructure:"terminals"`
	HistoryPaths    bool     `mapstructure:"history_paths"`
}

// DefaultTerminals is tried in order for applications with Terminal=true.
var DefaultTerminals = []string{
	"x-terminal-emulator",
	"gnome-terminal",
	"konsole",
	"xterm",
	"alacritty",
	"kitty",
}

// Dir is the per-user configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultPath is where Load looks when no file is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the configuration used when no file exists.
// ApplicationDirs is left empty; the scanner falls back to the XDG
// locations.
func Default() *Config {
	return &Config{
		DatabasePath: filepath.Join(Dir(), "database.json"),
		LogFile:      filepath.Join(xdg.StateHome, appName, appName+".log"),
		LogLevel:     "info",
		Terminals:    append([]string(nil), DefaultTerminals...),
		HistoryPaths: true,
	}
}

// Load reads the TOML file at path, or DefaultPath when path is empty.
// EXEK_* environment variables override file values. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("database_path", def.DatabasePath)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("application_dirs", def.ApplicationDirs)
	v.SetDefault("terminals", def.Terminals)
	v.SetDefault("history_paths", def.HistoryPaths)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.LogFile = expandHome(cfg.LogFile)
	for i, d := range cfg.ApplicationDirs {
		cfg.ApplicationDirs[i] = expandHome(d)
	}
	return &cfg, nil
}

func expandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}
