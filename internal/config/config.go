package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the client configuration
type Config struct {
	Version    int        `toml:"version"`
	APIURL     string     `toml:"api_url"`
	TimeoutSec int        `toml:"timeout_sec"`
	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize     int  `toml:"page_size"`
	ShowTags     bool `toml:"show_tags"`
	ShowRemarks  bool `toml:"show_remarks"`
	ToastSeconds int  `toml:"toast_seconds"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	// Create outlooker config directory
	outlookerDir := filepath.Join(configDir, "outlooker")
	os.MkdirAll(outlookerDir, 0755)

	return &configService{
		filePath: filepath.Join(outlookerDir, "config.toml"),
	}
}

// Load loads the configuration from file, then applies environment
// overrides. A .env file next to the working directory is honored when
// present.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		if !os.IsNotExist(underlying(err)) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	fillDefaults(&cfg)
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides lets the environment win over the file for deployment
// concerns. OUTLOOKER_API_URL and OUTLOOKER_TIMEOUT_SEC are recognized;
// a .env file is loaded first if one exists.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load() // missing .env is not an error

	if v := os.Getenv("OUTLOOKER_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("OUTLOOKER_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSec = n
		}
	}
}

func fillDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = def.Version
	}
	if cfg.APIURL == "" {
		cfg.APIURL = def.APIURL
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = def.TimeoutSec
	}
	if cfg.UISettings.PageSize <= 0 {
		cfg.UISettings.PageSize = def.UISettings.PageSize
	}
	if cfg.UISettings.ToastSeconds <= 0 {
		cfg.UISettings.ToastSeconds = def.UISettings.ToastSeconds
	}
}

// underlying unwraps the fmt-wrapped error for os.IsNotExist checks.
func underlying(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return err
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		APIURL:     "http://127.0.0.1:8080",
		TimeoutSec: 30,
		UISettings: UISettings{
			PageSize:     20,
			ShowTags:     true,
			ShowRemarks:  false,
			ToastSeconds: 3,
		},
	}
}
