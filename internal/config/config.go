// Package config loads the checkout service settings from an optional YAML
// file, an optional .env file and CHECKOUT_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath  = "CHECKOUT_CONFIG"
	EnvAddr        = "CHECKOUT_ADDR"
	EnvLogLevel    = "CHECKOUT_LOG_LEVEL"
	EnvLogFormat   = "CHECKOUT_LOG_FORMAT"
	EnvLogFile     = "CHECKOUT_LOG_FILE"
	EnvScanWorkers = "CHECKOUT_SCAN_WORKERS"
	EnvScanTimeout = "CHECKOUT_SCAN_TIMEOUT"
	EnvCORSOrigins = "CHECKOUT_CORS_ORIGINS"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Scan   ScanConfig   `yaml:"scan"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
	File   string `yaml:"file"`   // empty logs to stderr

	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

type ScanConfig struct {
	Workers int           `yaml:"workers"` // 0 uses GOMAXPROCS
	Timeout time.Duration `yaml:"timeout"`
}

// Options selects the files Load reads. Empty paths are skipped.
type Options struct {
	Path    string
	EnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 60 * time.Second,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			CORSOrigins:    []string{"*"},
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Scan: ScanConfig{
			Workers: 0,
			Timeout: 30 * time.Second,
		},
	}
}

// Load builds a configuration from defaults, the YAML file, the .env file
// and the process environment. A missing .env file is not an error.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	dotenv := map[string]string{}
	if opts.EnvFile != "" {
		values, err := godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", opts.EnvFile, err)
		}
		if values != nil {
			dotenv = values
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvScanWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScanWorkers, err)
		}
		c.Scan.Workers = n
	}
	if v, ok := lookup(EnvScanTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScanTimeout, err)
		}
		c.Scan.Timeout = d
	}
	if v, ok := lookup(EnvCORSOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	return nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be > 0")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be > 0")
	}
	if len(c.Server.CORSOrigins) == 0 {
		errs = append(errs, "server.cors_origins must list at least one origin")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, "log.format must be one of: json, console")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log rotation limits must be >= 0")
	}

	if c.Scan.Workers < 0 {
		errs = append(errs, "scan.workers must be >= 0")
	}
	if c.Scan.Timeout < 0 {
		errs = append(errs, "scan.timeout must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
