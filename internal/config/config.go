package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Session    SessionConfig    `yaml:"session" mapstructure:"session"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig selects the lead pool backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SessionConfig configures the search session.
type SessionConfig struct {
	PoolSize   int `yaml:"pool_size" mapstructure:"pool_size"`
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
	LatencyMS  int `yaml:"latency_ms" mapstructure:"latency_ms"`
	PageSize   int `yaml:"page_size" mapstructure:"page_size"`
}

// Debounce is DebounceMS as a duration.
func (c SessionConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Latency is LatencyMS as a duration.
func (c SessionConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// MonitoringConfig configures the background pool checker.
type MonitoringConfig struct {
	CheckIntervalSecs int `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// storeDrivers mirrors store.Drivers; config must not import store.
var storeDrivers = []string{"memory", "sqlite"}

// pageSizes mirrors session.PageSizes.
var pageSizes = []int{10, 20, 30, 40, 50}

// Load reads configuration from .env, config.yaml, and the environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.database_url", ":memory:")
	v.SetDefault("session.pool_size", 36)
	v.SetDefault("session.debounce_ms", 300)
	v.SetDefault("session.latency_ms", 400)
	v.SetDefault("session.page_size", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("monitoring.check_interval_secs", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given command. Every command
// needs a usable store and session; "serve" also needs a listen port and
// rate limit.
func (c *Config) Validate(mode string) error {
	var errs []string

	if !slices.Contains(storeDrivers, c.Store.Driver) {
		errs = append(errs, fmt.Sprintf("store.driver must be one of %v, got %q", storeDrivers, c.Store.Driver))
	}
	if c.Session.PoolSize <= 0 {
		errs = append(errs, "session.pool_size must be > 0")
	}
	if c.Session.DebounceMS < 0 {
		errs = append(errs, "session.debounce_ms must be >= 0")
	}
	if c.Session.LatencyMS < 0 {
		errs = append(errs, "session.latency_ms must be >= 0")
	}
	if !slices.Contains(pageSizes, c.Session.PageSize) {
		errs = append(errs, fmt.Sprintf("session.page_size must be one of %v", pageSizes))
	}

	if mode == "serve" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be between 1 and 65535")
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.RateBurst <= 0 {
			errs = append(errs, "server.rate_burst must be > 0")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
