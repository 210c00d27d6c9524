package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads the YAML file at configPath and applies NAVERSEARCH_*
// environment overrides. An empty path runs on defaults and the
// environment alone.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.viper.ConfigFileUsed() == "" {
		return fmt.Errorf("config was not loaded from a file")
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) unmarshal() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix("NAVERSEARCH")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.viper.SetDefault("server.host", "0.0.0.0")
	m.viper.SetDefault("server.port", 8080)
	m.viper.SetDefault("naver.base_url", "https://openapi.naver.com")
	m.viper.SetDefault("naver.env_file", ".env")
	m.viper.SetDefault("naver.timeout_seconds", 10)
	m.viper.SetDefault("naver.display", 100)
	m.viper.SetDefault("fetch.workers", 3)
	m.viper.SetDefault("cache.ttl_seconds", 600)
	m.viper.SetDefault("logger.level", "info")
	m.viper.SetDefault("logger.format", "json")
	m.viper.SetDefault("logger.output", "stdout")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// The search endpoints reject display values above 100.
	if config.Naver.Display <= 0 || config.Naver.Display > 100 {
		return fmt.Errorf("display must be between 1 and 100: %d", config.Naver.Display)
	}

	if config.Fetch.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if config.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache ttl_seconds must be positive")
	}

	return nil
}
