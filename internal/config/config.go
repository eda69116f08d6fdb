package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"crewuser"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"crewpassword"`
	DBName     string `envconfig:"DB_NAME" default:"crew_backend"`

	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`

	SessionSecret string `envconfig:"SESSION_SECRET" default:"default-secret-key-change-me"`
	GinMode       string `envconfig:"GIN_MODE" default:"debug"`

	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@crew.local"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD" default:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// RedisAddr returns the host:port of the session store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
