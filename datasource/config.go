package datasource

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration
type Config struct {
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"CHARGECAST_BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"CHARGECAST_PORT" env-default:"8080"`
	} `yaml:"listen"`

	Provider struct {
		BaseURL string        `yaml:"base_url" env:"CARBON_INTENSITY_URL" env-default:"https://api.carbonintensity.org.uk"`
		Timeout time.Duration `yaml:"timeout" env:"CARBON_INTENSITY_TIMEOUT" env-default:"10s"`

		RateLimit struct {
			Enabled bool    `yaml:"enabled" env:"CHARGECAST_RATE_LIMIT" env-default:"true"`
			RPS     float64 `yaml:"rps" env:"CHARGECAST_RATE_LIMIT_RPS" env-default:"1"`
			Burst   int     `yaml:"burst" env:"CHARGECAST_RATE_LIMIT_BURST" env-default:"5"`
		} `yaml:"rate_limit"`
	} `yaml:"provider"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"CHARGECAST_METRICS" env-default:"true"`
	} `yaml:"metrics"`
}

// LoadConfig reads configuration from a yaml file with environment variable
// overrides. A missing file is not an error: configuration then comes from
// the environment and the declared defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return &cfg, nil
}
