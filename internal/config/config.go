package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":5001"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SeedFixtures     bool          `envconfig:"SEED_FIXTURES" default:"true"`
	FixturesFile     string        `envconfig:"FIXTURES_FILE"`
	DefaultPageSize  int           `envconfig:"DEFAULT_PAGE_SIZE" default:"10"`
	MaxPageSize      int           `envconfig:"MAX_PAGE_SIZE" default:"100"`
	CORSAllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	LogDebug         bool          `envconfig:"LOG_DEBUG" default:"false"`
	LogPretty        bool          `envconfig:"LOG_PRETTY" default:"false"`
}

// Load exports envFile (or ./.env when envFile is empty and the file exists) into the
// process environment, then builds Config with defaults overridden by the environment.
func Load(envFile string) (Config, error) {
	envFile = strings.TrimSpace(envFile)
	if envFile != "" {
		if err := exportEnvironment(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else if err := exportEnvironmentIfExists(".env"); err != nil {
		return Config{}, fmt.Errorf("load default env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func exportEnvironmentIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(path)
}

// exportEnvironment copies the file's keys into the environment. Variables already set win.
func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	for k, val := range v.AllSettings() {
		key := strings.ToUpper(k)
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}
	return nil
}
