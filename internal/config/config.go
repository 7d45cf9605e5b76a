// Package config resolves CLI settings from defaults, an optional
// pageblocks.yaml, PAGEBLOCKS_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (PAGEBLOCKS_ADDR).
const EnvPrefix = "PAGEBLOCKS"

// FileName is the config file looked up in the working directory.
const FileName = "pageblocks"

// Config holds the settings shared by the commands.
type Config struct {
	// Content is the JSON document edited and rendered.
	Content string `mapstructure:"content"`
	// StaticDir is the site root: uploads land below it and the edit host
	// serves it as a fallback.
	StaticDir string `mapstructure:"static_dir"`
	// OutputDir receives static builds.
	OutputDir string `mapstructure:"output_dir"`
	Addr      string `mapstructure:"addr"`
	Title     string `mapstructure:"title"`
	Theme     string `mapstructure:"theme"`
	Variant   string `mapstructure:"variant"`
	// Templates optionally replaces the embedded HTML templates.
	Templates     string        `mapstructure:"templates"`
	LogLevel      string        `mapstructure:"log_level"`
	Watch         bool          `mapstructure:"watch"`
	Debounce      time.Duration `mapstructure:"debounce"`
	CreateMissing bool          `mapstructure:"create_missing"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Content:   "content/data.json",
		StaticDir: "public",
		OutputDir: "dist",
		Addr:      ":8080",
		Title:     "Home",
		Theme:     "landing",
		LogLevel:  "info",
		Watch:     true,
		Debounce:  300 * time.Millisecond,
	}
}

// New returns a viper instance carrying the defaults and environment
// bindings. file, when set, is the explicit config file.
func New(file string) *viper.Viper {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("content", defaults.Content)
	v.SetDefault("static_dir", defaults.StaticDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("title", defaults.Title)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("variant", defaults.Variant)
	v.SetDefault("templates", defaults.Templates)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("watch", defaults.Watch)
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("create_missing", defaults.CreateMissing)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if there is one and decodes the settings. A
// missing pageblocks.yaml is fine; a missing explicit file is not. It returns
// the file used, empty when none was read.
func Load(v *viper.Viper, explicit bool) (Config, string, error) {
	var used string
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || explicit {
			return Config{}, "", fmt.Errorf("config: read: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate checks the settings every command relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("config: content path is required")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("config: debounce must not be negative")
	}
	return nil
}
