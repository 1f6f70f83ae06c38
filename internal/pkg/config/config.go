package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:5173"`

	// Optional seed account promoted to MANAGER at startup. Public
	// registration always produces ordinary users.
	BootstrapManagerUsername string `env:"BOOTSTRAP_MANAGER_USERNAME"`
	BootstrapManagerPassword string `env:"BOOTSTRAP_MANAGER_PASSWORD"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Anthropic AnthropicConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quiz_app"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AnthropicConfig struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	Model   string `env:"ANTHROPIC_MODEL,    default=claude-3-5-haiku-latest"`
	BaseURL string `env:"ANTHROPIC_BASE_URL, default=https://api.anthropic.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs with production hardening
// (strict cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
