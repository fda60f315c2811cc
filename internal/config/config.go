// Package config loads server configuration from a YAML file plus
// SPYCARDS_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig covers the HTTP/WebSocket listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig selects zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig tunes match behavior.
type GameConfig struct {
	// StepDelay paces the four reveal pipeline steps.
	StepDelay time.Duration `mapstructure:"step_delay"`
	// CatalogPath points at the bestiary YAML file.
	CatalogPath string `mapstructure:"catalog_path"`
	// Seed fixes the shuffle RNG; zero means time-based.
	Seed int64 `mapstructure:"seed"`
}

// DatabaseConfig covers the optional match-history store.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Load reads configuration from path. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":4000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.step_delay", time.Second)
	v.SetDefault("game.catalog_path", "config/bestiary.yaml")
	v.SetDefault("game.seed", 0)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	v.SetEnvPrefix("SPYCARDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
