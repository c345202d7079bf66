package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "PRINTCOST"

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath   string `envconfig:"DB_PATH" default:"./printcost.db"`
	Addr     string `envconfig:"ADDR" default:"127.0.0.1:8080"`
	StateKey string `envconfig:"STATE_KEY" default:"3dPrinterCostCalculatorState"`
	Units    int    `envconfig:"UNITS" default:"20"`
	Currency string `envconfig:"CURRENCY" default:"NT$"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads environment variables, after a best-effort .env file, and
// returns a populated Config.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path.
func LoadFile(dotenvPath string) (Config, error) {
	// Missing files are fine; production should use real env injection.
	if _, err := loadDotEnv(dotenvPath); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Units <= 0 {
		return Config{}, fmt.Errorf("%s_UNITS must be greater than 0, got %d", envPrefix, cfg.Units)
	}
	return cfg, nil
}
