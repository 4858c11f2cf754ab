// Package config holds the PlantKeeper CLI settings: defaults, then
// PLANTKEEPER_* environment variables, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

const envPrefix = "PLANTKEEPER_"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - TokenFile: where login/register store the bearer token.
//   - Timeout: per-request HTTP timeout.
type Config struct {
	ServerURL string        `env:"SERVER"`
	TokenFile string        `env:"TOKEN_FILE"`
	Timeout   time.Duration `env:"TIMEOUT"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.TokenFile = defaultTokenFile()
	c.Timeout = 10 * time.Second
}

// LoadEnv overlays PLANTKEEPER_* variables. A nil environment means the
// process environment.
func (c *Config) LoadEnv(environment map[string]string) error {
	opts := env.Options{Prefix: envPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	return env.ParseWithOptions(c, opts)
}

// BindFlags registers persistent flags on cmd. Their defaults are the
// current values, so flags given on the command line win.
func (c *Config) BindFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&c.ServerURL, "server", "s", c.ServerURL, "PlantKeeper server URL")
	fs.StringVar(&c.TokenFile, "token-file", c.TokenFile, "file that stores the bearer token")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "HTTP request timeout")
}

// Load returns defaults overlaid with the process environment.
func Load() (*Config, error) {
	c := &Config{}
	c.LoadDefaults()
	if err := c.LoadEnv(nil); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plantkeeper-token"
	}
	return filepath.Join(home, ".plantkeeper", "token")
}
