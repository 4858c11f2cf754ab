package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/plantkeeper/internal/flagx"
	"github.com/dmitrijs2005/plantkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Duration
// fields use timex.Duration so both "1h" and integer nanoseconds decode.
// Fields left out of the file keep their current value.
type JsonConfig struct {
	HTTPAddr                 string         `json:"http_addr"`
	GRPCAddr                 string         `json:"grpc_addr"`
	DatabaseDSN              string         `json:"database_dsn"`
	SecretKey                string         `json:"secret_key"`
	TokenValidityDuration    timex.Duration `json:"token_validity_duration"`
	BcryptCost               int            `json:"bcrypt_cost"`
	LogLevel                 string         `json:"log_level"`
	Environment              string         `json:"environment"`
	S3RootUser               string         `json:"s3_root_user"`
	S3RootPassword           string         `json:"s3_root_password"`
	S3Bucket                 string         `json:"s3_bucket"`
	S3Region                 string         `json:"s3_region"`
	S3BaseEndpoint           string         `json:"s3_base_endpoint"`
	PhotoURLValidityDuration timex.Duration `json:"photo_url_validity_duration"`
	HealthCheckInterval      timex.Duration `json:"health_check_interval"`
}

// parseJson overlays values from the file named by -c/-config. Without
// that flag it does nothing.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Environment, c.Environment)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.PhotoURLValidityDuration.Duration != 0 {
		config.PhotoURLValidityDuration = c.PhotoURLValidityDuration.Duration
	}
	if c.HealthCheckInterval.Duration != 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
