package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "XTCONSOLE"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Player    PlayerConfig    `mapstructure:"player"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the backend connection
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Backend origin, e.g. http://host:8000
	Timeout time.Duration `mapstructure:"timeout"` // 0 = no client-side timeout
}

// PlayerConfig holds external player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// ClipboardConfig holds clipboard configuration
type ClipboardConfig struct {
	OSC52 bool `mapstructure:"osc52"` // fall back to the terminal escape sequence
}

// DownloadsConfig holds where converted playlists are saved
type DownloadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// HistoryConfig holds the operator journal configuration
type HistoryConfig struct {
	Dir   string `mapstructure:"dir"` // empty = memory only
	Limit int    `mapstructure:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Args: []string{},
		},
		Clipboard: ClipboardConfig{
			OSC52: true,
		},
		Downloads: DownloadsConfig{
			Dir: defaultDownloadsPath(),
		},
		History: HistoryConfig{
			Dir:   defaultDataPath(),
			Limit: 500,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "xtconsole.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "xtconsole")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "xtconsole")
	}
}

func defaultDownloadsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "xtconsole")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "xtconsole")
	}
}

// DefaultConfigFile returns the file SaveConfig writes when no path is given
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	// Defaults register every key so env overrides reach nested fields
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("clipboard.osc52", cfg.Clipboard.OSC52)
	v.SetDefault("downloads.dir", cfg.Downloads.Dir)
	v.SetDefault("history.dir", cfg.History.Dir)
	v.SetDefault("history.limit", cfg.History.Limit)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// XTCONSOLE_SERVER_URL -> server.url
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.expandPaths()

	return cfg, nil
}

// SaveConfig writes the configuration as YAML. An empty path uses DefaultConfigFile.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)
	v.Set("clipboard.osc52", cfg.Clipboard.OSC52)
	v.Set("downloads.dir", cfg.Downloads.Dir)
	v.Set("history.dir", cfg.History.Dir)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearServerConfig forgets the backend URL while preserving other settings
func ClearServerConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	cfg.Server = ServerConfig{}
	return SaveConfig(cfg, path)
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Server.URL) != ""
}

func (c *Config) expandPaths() {
	c.Downloads.Dir = expandHome(c.Downloads.Dir)
	c.History.Dir = expandHome(c.History.Dir)
	c.Logging.File = expandHome(c.Logging.File)
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
