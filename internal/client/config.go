package client

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config configures the API client.
type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	Timeout    time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
