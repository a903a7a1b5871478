// Package config loads server settings from defaults, an optional file,
// FOMETER_* environment variables and command-line flags, in rising order of
// precedence.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
)

// EnvPrefix namespaces environment overrides, e.g. FOMETER_PORT.
const EnvPrefix = "FOMETER"

// Config holds everything the server and CLI need at startup.
type Config struct {
	Port                  int           `mapstructure:"port"`
	DataDir               string        `mapstructure:"data_dir"`
	CorpusPath            string        `mapstructure:"corpus_path"`
	CacheTTL              time.Duration `mapstructure:"cache_ttl"`
	CacheSize             int           `mapstructure:"cache_size"`
	LogLevel              string        `mapstructure:"log_level"`
	GinMode               string        `mapstructure:"gin_mode"`
	CORSOrigins           []string      `mapstructure:"cors_origins"`
	CollectorMaxAttempts  int           `mapstructure:"collector_max_attempts"`
	SimulationConcurrency int           `mapstructure:"simulation_concurrency"`
	EnableSwagger         bool          `mapstructure:"enable_swagger"`
	EnableHSTS            bool          `mapstructure:"enable_hsts"`
	BreakerThreshold      int           `mapstructure:"breaker_threshold"`
	BreakerCooldown       time.Duration `mapstructure:"breaker_cooldown"`
}

var defaults = map[string]interface{}{
	"port":                   8080,
	"data_dir":               "./data",
	"corpus_path":            "",
	"cache_ttl":              15 * time.Minute,
	"cache_size":             1024,
	"log_level":              "info",
	"gin_mode":               "release",
	"cors_origins":           []string{"*"},
	"collector_max_attempts": 3,
	"simulation_concurrency": 4,
	"enable_swagger":         true,
	"enable_hsts":            false,
	"breaker_threshold":      5,
	"breaker_cooldown":       30 * time.Second,
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		// defaults are static and always decode
		panic(err)
	}
	return cfg
}

// Load reads configuration. path may be empty; when set, the file must
// exist and its format is taken from the extension (yaml, json, toml).
// Flags whose names match a key, with dashes for underscores, are bound.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigurationError(fmt.Sprintf("read config file %s", path), err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := defaults[key]; !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return nil, errors.NewConfigurationError("bind flags", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigurationError("decode configuration", err)
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	fields := map[string]string{}

	if c.Port < 1 || c.Port > 65535 {
		fields["port"] = fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		fields["data_dir"] = "must not be empty"
	}
	if c.CacheTTL <= 0 {
		fields["cache_ttl"] = "must be positive"
	}
	if c.CacheSize <= 0 {
		fields["cache_size"] = "must be positive"
	}
	if c.CollectorMaxAttempts <= 0 {
		fields["collector_max_attempts"] = "must be positive"
	}
	if c.SimulationConcurrency <= 0 {
		fields["simulation_concurrency"] = "must be positive"
	}
	if c.BreakerThreshold <= 0 {
		fields["breaker_threshold"] = "must be positive"
	}
	if c.BreakerCooldown <= 0 {
		fields["breaker_cooldown"] = "must be positive"
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		fields["log_level"] = fmt.Sprintf("unknown level %q", c.LogLevel)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		fields["gin_mode"] = fmt.Sprintf("unknown mode %q", c.GinMode)
	}

	if len(fields) == 0 {
		return nil
	}
	err := errors.NewValidationErrorWithMap(fields)
	return errors.NewConfigurationError("invalid configuration", err)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
