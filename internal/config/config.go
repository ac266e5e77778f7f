package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string `env:"DATABASE_URL" env-required:"true"`
	DatabaseSSLMode string `env:"DATABASE_SSLMODE" env-default:"require"`
	HTTPAddr        string `env:"HTTP_ADDR" env-default:":8000"`
	BatchSize       int    `env:"BATCH_SIZE" env-default:"1000"`
	ZeroPricePolicy string `env:"ZERO_PRICE_POLICY" env-default:"drop"`
	RulesPath       string `env:"RULES_PATH"`
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the Postgres connection string with the sslmode appended
// when the URL carries none; hosted Postgres providers require it.
func (this *Config) DSN() string {
	url := this.DatabaseURL
	if this.DatabaseSSLMode != "" && !strings.Contains(url, "sslmode") {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "sslmode=" + this.DatabaseSSLMode
	}
	return url
}
