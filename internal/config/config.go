package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"capstone-blog/internal/store"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	Backend         string        `yaml:"backend"`
	RedisAddr       string        `yaml:"redis_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Log             LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Production bool `yaml:"production"`
}

// Default returns the built-in configuration. PORT, when set, picks the port.
func Default() Config {
	addr := ":3000"
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		addr = ":" + port
	}
	return Config{
		Addr:            addr,
		Backend:         store.BackendMemory,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	switch c.Backend {
	case store.BackendMemory, store.BackendBadger:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, store.BackendMemory, store.BackendBadger)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	return nil
}

// EventsEnabled reports whether post events should be queued on Redis.
func (c Config) EventsEnabled() bool {
	return c.RedisAddr != ""
}
