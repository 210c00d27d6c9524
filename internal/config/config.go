package config

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Naver  NaverConfig  `mapstructure:"naver"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type NaverConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	EnvFile        string `mapstructure:"env_file"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Display        int    `mapstructure:"display"`
}

type FetchConfig struct {
	Workers int `mapstructure:"workers"`
}

type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
