package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port     string
	LogLevel string
	Timezone string

	StorageBackend string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	OperatorQueueSize int
}

// In all cases the default behavior should be for the docker compose setup
func applyDefaults(v *viper.Viper) {
	v.SetDefault("port", "9446")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("storage_backend", BackendPostgres)

	v.SetDefault("postgres_address", "localhost")
	v.SetDefault("postgres_port", "5433")
	v.SetDefault("postgres_db", "postgres")
	v.SetDefault("postgres_username", "postgres")
	v.SetDefault("postgres_password", "testpassword")

	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("operator_queue_size", 1000)
}

// ProcessEnvironmentVariables reads the configuration from the environment,
// falling back to the docker compose defaults.
func ProcessEnvironmentVariables() (*Config, error) {
	v := viper.New()
	applyDefaults(v)
	v.AutomaticEnv()

	env := Config{
		Port:              v.GetString("port"),
		LogLevel:          v.GetString("log_level"),
		Timezone:          v.GetString("timezone"),
		StorageBackend:    strings.ToLower(v.GetString("storage_backend")),
		PostgresAddress:   v.GetString("postgres_address"),
		PostgresPort:      v.GetString("postgres_port"),
		PostgresDB:        v.GetString("postgres_db"),
		PostgresUsername:  v.GetString("postgres_username"),
		PostgresPassword:  v.GetString("postgres_password"),
		RedisAddress:      v.GetString("redis_address"),
		RedisPassword:     v.GetString("redis_password"),
		RedisDB:           v.GetInt("redis_db"),
		OperatorQueueSize: v.GetInt("operator_queue_size"),
	}

	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("STORAGE_BACKEND %q: want memory, postgres or redis", c.StorageBackend)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.OperatorQueueSize < 1 {
		return fmt.Errorf("OPERATOR_QUEUE_SIZE must be positive, got %d", c.OperatorQueueSize)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// Location is the zone "today" is evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
