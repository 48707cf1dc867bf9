// Package config loads moviefrenz settings.
//
// Values are layered, later sources winning: built-in defaults, an optional
// YAML file (--config or MOVIEFRENZ_CONFIG), a .env file in the working
// directory, MOVIEFRENZ_* environment variables and finally command-line
// flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sangamparmar/MovieFrenz/service"
	"github.com/sangamparmar/MovieFrenz/store"
)

const (
	EnvConfig      = "MOVIEFRENZ_CONFIG"
	EnvAPIURL      = "MOVIEFRENZ_API_URL"
	EnvToken       = "MOVIEFRENZ_TOKEN"
	EnvDownloadDir = "MOVIEFRENZ_DOWNLOAD_DIR"
	EnvLogFile     = "MOVIEFRENZ_LOG_FILE"
	EnvLogLevel    = "MOVIEFRENZ_LOG_LEVEL"
	EnvTimeout     = "MOVIEFRENZ_TIMEOUT"
	EnvRetries     = "MOVIEFRENZ_RETRIES"

	DefaultLogLevel = "info"
	DefaultTimeout  = 12 * time.Second
	DefaultRetries  = 1
)

type Config struct {
	// APIBaseURL is the backend root; tickets live under /auth/tickets.
	APIBaseURL string `yaml:"api_url"`

	// Token is the bearer credential sent with every ticket request.
	Token string `yaml:"token"`

	// DownloadDir receives exported ticket.pdf files.
	DownloadDir string `yaml:"download_dir"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	RequestTimeout time.Duration `yaml:"timeout"`

	// Retries is the number of attempts list and export make per request.
	// The interactive screens always make a single attempt.
	Retries int `yaml:"retries"`
}

func Default() *Config {
	cfg := &Config{
		APIBaseURL:     service.DefaultBaseURL,
		DownloadDir:    store.DefaultDownloadDir(),
		LogLevel:       DefaultLogLevel,
		RequestTimeout: DefaultTimeout,
		Retries:        DefaultRetries,
	}
	if path, err := store.DefaultLogPath(); err == nil {
		cfg.LogFile = path
	}
	return cfg
}

// Load builds the configuration from every source except flags. path may be
// empty, in which case MOVIEFRENZ_CONFIG is consulted; a missing config file
// is only an error when one was asked for. envFiles defaults to ".env".
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(EnvAPIURL, &c.APIBaseURL)
	setString(EnvToken, &c.Token)
	setString(EnvDownloadDir, &c.DownloadDir)
	setString(EnvLogFile, &c.LogFile)
	setString(EnvLogLevel, &c.LogLevel)

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvRetries)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRetries, v, err)
		}
		c.Retries = n
	}
	return nil
}

// Validate checks the values that would otherwise fail late, inside the TUI.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("api url is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.Retries < 1 {
		errs = append(errs, fmt.Errorf("retries must be at least 1, got %d", c.Retries))
	}
	return errors.Join(errs...)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}
