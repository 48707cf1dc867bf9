package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides. Only flags the user actually set
// are applied, so defaults never mask file or env values.
type Flags struct {
	ConfigFile  string
	APIURL      string
	Token       string
	DownloadDir string
	LogFile     string
	LogLevel    string
	Timeout     time.Duration
	Retries     int
}

func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "path to a YAML config file (env "+EnvConfig+")")
	fs.StringVar(&f.APIURL, "api-url", "", "backend base URL (env "+EnvAPIURL+")")
	fs.StringVar(&f.Token, "token", "", "bearer token for the tickets API (env "+EnvToken+")")
	fs.StringVar(&f.DownloadDir, "download-dir", "", "directory for exported tickets (env "+EnvDownloadDir+")")
	fs.StringVar(&f.LogFile, "log-file", "", "log file path (env "+EnvLogFile+")")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error (env "+EnvLogLevel+")")
	fs.DurationVar(&f.Timeout, "timeout", 0, "HTTP request timeout (env "+EnvTimeout+")")
	fs.IntVar(&f.Retries, "retries", 0, "attempts per request for list and export (env "+EnvRetries+")")
}

func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("api-url") {
		cfg.APIBaseURL = f.APIURL
	}
	if fs.Changed("token") {
		cfg.Token = f.Token
	}
	if fs.Changed("download-dir") {
		cfg.DownloadDir = f.DownloadDir
	}
	if fs.Changed("log-file") {
		cfg.LogFile = f.LogFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if fs.Changed("timeout") {
		cfg.RequestTimeout = f.Timeout
	}
	if fs.Changed("retries") {
		cfg.Retries = f.Retries
	}
}

// Resolve loads every source and applies the flags on top.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	f.Apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
