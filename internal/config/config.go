package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"hackclock/internal/storage"
)

// AppName names the config directory and the single-instance lock.
const AppName = "HackClock"

// StorageConfig selects where the main countdown is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// WindowConfig controls the board window.
type WindowConfig struct {
	Fullscreen bool `mapstructure:"fullscreen"`
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
}

// Config holds shell settings. Phases and the event length are not
// configurable.
type Config struct {
	Storage      StorageConfig `mapstructure:"storage"`
	Window       WindowConfig  `mapstructure:"window"`
	ConfirmReset bool          `mapstructure:"confirm_reset"`
	Tray         bool          `mapstructure:"tray"`
}

// Load reads config.yaml from configPath, or from the working directory and
// searchDir when configPath is empty. HACKCLOCK_* environment variables
// override file values. A missing file yields defaults.
func Load(v *viper.Viper, configPath, searchDir string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if searchDir != "" {
			v.AddConfigPath(searchDir)
		}
	}

	v.SetEnvPrefix("HACKCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", string(storage.BackendYAML))
	v.SetDefault("storage.path", "")
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.width", 1100)
	v.SetDefault("window.height", 720)
	v.SetDefault("confirm_reset", true)
	v.SetDefault("tray", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode builds a Config from the current values of v. Window sizes are
// clamped to a usable minimum.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Window.Width < 320 {
		log.Printf("config: window.width %d too small, using 320", cfg.Window.Width)
		cfg.Window.Width = 320
	}
	if cfg.Window.Height < 240 {
		log.Printf("config: window.height %d too small, using 240", cfg.Window.Height)
		cfg.Window.Height = 240
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	return &cfg, nil
}

// StorageOptions converts the storage section. Default state files live in
// dir.
func (cfg *Config) StorageOptions(dir string) storage.Options {
	return storage.Options{
		Backend: storage.Backend(cfg.Storage.Backend),
		Path:    cfg.Storage.Path,
		Dir:     dir,
	}
}
