package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Cache     CacheConfig     `mapstructure:"cache"`
	LogLevel  string          `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type GeneratorConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.path", "DB_PATH")
	viper.BindEnv("auth.secret_key", "SECRET_KEY")
	viper.BindEnv("auth.token_ttl", "TOKEN_TTL")
	viper.BindEnv("generator.api_key", "GENERATOR_API_KEY")
	viper.BindEnv("generator.base_url", "GENERATOR_BASE_URL")
	viper.BindEnv("generator.model", "GENERATOR_MODEL")
	viper.BindEnv("generator.timeout", "GENERATOR_TIMEOUT")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("cache.ttl", "CACHE_TTL")
	viper.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(cfg.Auth.SecretKey) == "" {
		return nil, fmt.Errorf("SECRET_KEY must not be empty")
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("database.path", "data/pantryplan.db")
	viper.SetDefault("auth.secret_key", "change_me_in_production")
	viper.SetDefault("auth.token_ttl", 7*24*time.Hour)
	viper.SetDefault("generator.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("generator.model", "openai/gpt-4o-mini")
	viper.SetDefault("generator.timeout", 60*time.Second)
	viper.SetDefault("cache.ttl", 15*time.Minute)
	viper.SetDefault("log_level", "info")
}
