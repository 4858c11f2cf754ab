package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/plantkeeper/internal/flagx"
)

const envPrefix = "PLANTKEEPER_"

// parseEnv overlays PLANTKEEPER_* variables onto config. A dotenv file named
// by -env is loaded first; variables already set in the process win over it.
// A non-nil environment replaces the process environment.
func parseEnv(config *Config, args []string, environment map[string]string) error {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	opts := env.Options{Prefix: envPrefix}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
