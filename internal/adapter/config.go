package adapter

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

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// APIConfig holds the remote todos endpoint configuration
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`    // e.g. http://127.0.0.1:4000
	UserID     int           `mapstructure:"user_id"`     // Scopes list/create requests
	Timeout    time.Duration `mapstructure:"timeout"`     // 0 = no client-side timeout
	MaxRetries int           `mapstructure:"max_retries"` // Retries for reads on 5xx
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultFilter string        `mapstructure:"default_filter"` // all, active, completed
	ErrorDuration time.Duration `mapstructure:"error_duration"` // How long errors stay visible
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ServerConfig holds the development server configuration
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	DBPath string `mapstructure:"db_path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			MaxRetries: 3,
		},
		UI: UIConfig{
			DefaultFilter: "all",
			ErrorDuration: 3 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:4000",
			DBPath: filepath.Join(defaultDataPath(), "server.db"),
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "todos")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "todos")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), "todos.log")
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "todos")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "todos")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Defaults must be registered for env overrides of nested keys to apply
	setDefaults(v, cfg)

	// Environment variable overrides, e.g. TODOS_API_BASE_URL
	v.SetEnvPrefix("TODOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.user_id", cfg.API.UserID)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.max_retries", cfg.API.MaxRetries)
	v.SetDefault("ui.default_filter", cfg.UI.DefaultFilter)
	v.SetDefault("ui.error_duration", cfg.UI.ErrorDuration)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.db_path", cfg.Server.DBPath)
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.New(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.user_id", cfg.API.UserID)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.max_retries", cfg.API.MaxRetries)

	v.Set("ui.default_filter", cfg.UI.DefaultFilter)
	v.Set("ui.error_duration", cfg.UI.ErrorDuration.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.db_path", cfg.Server.DBPath)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the API base URL and user ID are set
func (c *Config) IsConfigured() bool {
	return c.API.BaseURL != "" && c.API.UserID > 0
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
