// Package config loads runtime settings from defaults, an optional config
// file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CURSOR_CRISIS_LOG_LEVEL.
const EnvPrefix = "CURSOR_CRISIS"

// configName is the config file base name searched for when no path is given.
const configName = "cursor-crisis"

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// AudioConfig holds cue playback settings.
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// RenderConfig holds terminal output settings.
type RenderConfig struct {
	FPS       int `mapstructure:"fps"`
	MaxWidth  int `mapstructure:"maxWidth"`  // Terminal columns
	MaxHeight int `mapstructure:"maxHeight"` // Terminal rows
}

// GameConfig holds session settings.
type GameConfig struct {
	Seed int64 `mapstructure:"seed"` // 0 seeds from the clock
}

// Config is the complete runtime configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Render RenderConfig `mapstructure:"render"`
	Game   GameConfig   `mapstructure:"game"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "cursor-crisis.log")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("render.fps", 60)
	v.SetDefault("render.maxWidth", 200)
	v.SetDefault("render.maxHeight", 60)

	v.SetDefault("game.seed", 0)
}

// RegisterFlags adds the command-line flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a config file (yaml, json or toml)")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.String("log-file", "cursor-crisis.log", "log file path")
	fs.Bool("audio", true, "play sound cues")
	fs.Int64("seed", 0, "random seed, 0 for time-based")
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"audio":     "audio.enabled",
	"seed":      "game.seed",
}

// Load builds the configuration. fs may be nil; when set, its "config" flag
// selects the config file and other registered flags override every other
// source.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var path string
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if err := readConfigFile(v, path); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readConfigFile reads an explicit config file, or searches the default
// locations when path is empty. Only an explicit path must exist.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	case c.Render.FPS < 1 || c.Render.FPS > 240:
		return fmt.Errorf("render.fps must be within [1, 240], got %d", c.Render.FPS)
	case c.Render.MaxWidth < 20:
		return fmt.Errorf("render.maxWidth must be at least 20, got %d", c.Render.MaxWidth)
	case c.Render.MaxHeight < 10:
		return fmt.Errorf("render.maxHeight must be at least 10, got %d", c.Render.MaxHeight)
	}
	return nil
}
