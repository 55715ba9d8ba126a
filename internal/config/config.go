package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Auth       `yaml:"auth"`
	Sweep      `yaml:"sweep"`
	SMTP       `yaml:"smtp"`
	Kafka      `yaml:"kafka"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Database struct {
	Dsn string `yaml:"dsn" env:"POSTGRES_URL"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"1h"`
}

type Sweep struct {
	// Expiry sweep cadence. Tunable; sub-minute values are for local testing.
	Interval time.Duration `yaml:"interval" env:"SWEEP_INTERVAL" env-default:"1m"`
}

type SMTP struct {
	Host       string `yaml:"host" env:"SMTP_HOST"`
	Port       int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username   string `yaml:"username" env:"SMTP_USERNAME"`
	Password   string `yaml:"password" env:"SMTP_PASSWORD"`
	From       string `yaml:"from" env:"SMTP_FROM"`
	FromName   string `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"PetroMart"`
	UseSSL     bool   `yaml:"use_ssl" env:"SMTP_USE_SSL" env-default:"false"`
	AppBaseURL string `yaml:"app_base_url" env:"APP_BASE_URL" env-default:"http://localhost:5173"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
}

// MustLoad reads CONFIG_PATH as a YAML file when set, otherwise falls back
// to environment variables only.
func MustLoad() *Config {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			log.Fatalf("failed to find config file: %v", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read config from environment: %v", err)
	}
	return &cfg
}
