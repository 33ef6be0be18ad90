package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Engine   EngineConfig   `yaml:"engine"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type EngineConfig struct {
	// PollIntervalSeconds is the reconciliation cadence. It bounds the
	// worst-case propagation latency between the two contexts.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`

	KitchenAddress string `yaml:"kitchen_address"`

	// EstimationTimeoutSeconds caps the simulated ETA lookup; past it
	// the lookup counts as failed.
	EstimationTimeoutSeconds int `yaml:"estimation_timeout_seconds"`
	EstimationLatencyMs      int `yaml:"estimation_latency_ms"`
}

// Load reads the YAML config file, then lets environment variables
// (optionally from a .env file) override the connection settings.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	overrideString(&cfg.Env, "APP_ENV")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideInt(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.RabbitMQ.Host, "RABBITMQ_HOST")
	overrideInt(&cfg.RabbitMQ.Port, "RABBITMQ_PORT")
	overrideString(&cfg.RabbitMQ.User, "RABBITMQ_USER")
	overrideString(&cfg.RabbitMQ.Password, "RABBITMQ_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.PollIntervalSeconds <= 0 {
		cfg.Engine.PollIntervalSeconds = 5
	}
	if cfg.Engine.KitchenAddress == "" {
		cfg.Engine.KitchenAddress = "123 Kitchen Street, Jaipur"
	}
	if cfg.Engine.EstimationTimeoutSeconds <= 0 {
		cfg.Engine.EstimationTimeoutSeconds = 10
	}
	if cfg.Engine.EstimationLatencyMs <= 0 {
		cfg.Engine.EstimationLatencyMs = 1000
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
