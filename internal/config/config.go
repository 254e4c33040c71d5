// Package config loads server settings from flags, STOREFRONT_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

type Config struct {
	LogLevel        string        `mapstructure:"log_level"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	DBPath          string        `mapstructure:"db_path"`
	CatalogFile     string        `mapstructure:"catalog_file"`
	TokenSecret     string        `mapstructure:"token_secret"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	HistoryLimit    int           `mapstructure:"history_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load parses args (without the program name) and returns the merged config.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	configFile := flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("http-addr", ":8080", "HTTP listen address")
	flags.String("db-path", "./data/catalog.db", "SQLite catalog database path")
	flags.String("catalog-file", "", "optional YAML/JSON catalog imported at startup")
	flags.String("token-secret", "", "secret used to sign session tokens")
	flags.Duration("session-ttl", 2*time.Hour, "idle time after which a session expires")
	flags.Duration("sweep-interval", time.Minute, "how often idle sessions are swept")
	flags.Int("history-limit", 50, "cart changes each session can undo")
	flags.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
	})
	if bindErr != nil {
		return Config{}, bindErr
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if len(c.TokenSecret) < 16 {
		errs = append(errs, errors.New("token_secret must be at least 16 characters"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("sweep_interval must be positive"))
	}
	if c.HistoryLimit <= 0 {
		errs = append(errs, errors.New("history_limit must be positive"))
	}
	return errors.Join(errs...)
}
