package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "APP_"

// ErrConfigFailed wraps any problem reading or validating configuration
var ErrConfigFailed = errors.New("config: failed to load")

// LookupFunc resolves an environment variable, os.LookupEnv in production
type LookupFunc func(key string) (string, bool)

// Load builds the configuration from defaults, the optional YAML file at
// path and environment overrides, in that order.
func Load(path string, lookup LookupFunc) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrConfigFailed, path, err)
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFailed, err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Company.PhoneRegion = strings.ToUpper(strings.TrimSpace(cfg.Company.PhoneRegion))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFailed, err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

type envBinding struct {
	name string
	set  func(c *Config, raw string) error
}

var envBindings = []envBinding{
	{"SERVER_ADDRESS", func(c *Config, v string) error { c.Server.Address = v; return nil }},
	{"SERVER_DEBUG", func(c *Config, v string) (err error) { c.Server.Debug, err = strconv.ParseBool(v); return }},
	{"DATABASE_DRIVER", func(c *Config, v string) error { c.Database.Driver = v; return nil }},
	{"DATABASE_DSN", func(c *Config, v string) error { c.Database.DSN = v; return nil }},
	{"AUTH_SIGNING_KEY", func(c *Config, v string) error { c.Auth.SigningKey = v; return nil }},
	{"AUTH_TOKEN_EXPIRATION", func(c *Config, v string) (err error) { c.Auth.TokenExpiration, err = time.ParseDuration(v); return }},
	{"AUTH_PASSWORD_COST", func(c *Config, v string) (err error) { c.Auth.PasswordCost, err = strconv.Atoi(v); return }},
	{"AUTH_DETERMINISTIC_IDS", func(c *Config, v string) (err error) { c.Auth.DeterministicIDs, err = strconv.ParseBool(v); return }},
	{"COMPANY_PHONE_REGION", func(c *Config, v string) error { c.Company.PhoneRegion = v; return nil }},
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	for _, b := range envBindings {
		raw, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.set(c, strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
	}
	return nil
}
