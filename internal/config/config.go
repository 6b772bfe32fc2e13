package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	User     UserConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// StorageConfig picks where widget settings live: sqlite, file or none.
type StorageConfig struct {
	Backend  string
	FilePath string `mapstructure:"file_path"`
}

// UserConfig identifies who is playing. Only a gm gets the button.
type UserConfig struct {
	Name string
	Role string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AnchorWidth   int `mapstructure:"anchor_width"`
	AnchorHeight  int `mapstructure:"anchor_height"`
	MenuRowHeight int `mapstructure:"menu_row_height"`
	ToastSeconds  int `mapstructure:"toast_seconds"`
	RetryDelayMS  int `mapstructure:"retry_delay_ms"`
}

// LogConfig holds the log file location.
type LogConfig struct {
	File string
}

// IsGameMaster reports whether the configured user may use the button.
func (c Config) IsGameMaster() bool {
	return strings.EqualFold(strings.TrimSpace(c.User.Role), "gm")
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "yamatools")
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("YAMATOOLS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "yamatools", "config.toml")
}

// Exists reports whether a config file is present at Path.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads configuration from file and env. Env var overrides use prefix YAMATOOLS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "yamatools.db"))
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.file_path", "")
	v.SetDefault("user.name", os.Getenv("USER"))
	v.SetDefault("user.role", "gm")
	v.SetDefault("ui.anchor_width", 6)
	v.SetDefault("ui.anchor_height", 3)
	v.SetDefault("ui.menu_row_height", 1)
	v.SetDefault("ui.toast_seconds", 3)
	v.SetDefault("ui.retry_delay_ms", 250)
	v.SetDefault("log.file", filepath.Join(dataDir(), "yamatools.log"))

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("YAMATOOLS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.file_path", cfg.Storage.FilePath)
	v.Set("user.name", cfg.User.Name)
	v.Set("user.role", cfg.User.Role)
	v.Set("ui.anchor_width", cfg.UI.AnchorWidth)
	v.Set("ui.anchor_height", cfg.UI.AnchorHeight)
	v.Set("ui.menu_row_height", cfg.UI.MenuRowHeight)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)
	v.Set("ui.retry_delay_ms", cfg.UI.RetryDelayMS)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
