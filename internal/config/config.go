package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"MONGO_"`
	JWT      JWT      `envPrefix:"JWT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Database contains MongoDB connection parameters.
type Database struct {
	URI  string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Name string `env:"DATABASE" envDefault:"taskman"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
