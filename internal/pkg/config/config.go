package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	ServiceName string `env:"SERVICE_NAME, default=moderation-api"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED, default=true"`
	EnableDocs       bool `env:"ENABLE_DOCS,        default=true"`

	// EmailAPIURL is the base URL of the email-api service used for ban,
	// unban, photo-rejection, and content-removal notifications.
	EmailAPIURL string `env:"EMAIL_API_URL, default=http://localhost:8025"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=activity_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
