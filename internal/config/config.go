package config

import (
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/santhosh1815/hmi/internal/errors"
)

const (
	DefaultInterval    = 1000
	DefaultHistorySize = 60
	DefaultInitialLoad = 50
	DefaultListenAddr  = ":8080"
	DefaultLogLevel    = "info"
	DefaultDBPath      = "/var/lib/hmi/telemetry.db"
	DefaultDiagTimeout = 15

	maxTargetLoad = 120
)

type Config struct {
	Interval           int    `mapstructure:"interval"`
	HistorySize        int    `mapstructure:"history_size"`
	InitialLoad        int    `mapstructure:"initial_load"`
	Listen             string `mapstructure:"listen"`
	LogLevel           string `mapstructure:"log_level"`
	Telemetry          bool   `mapstructure:"telemetry"`
	Database           string `mapstructure:"database"`
	DiagnosticsURL     string `mapstructure:"diagnostics_url"`
	DiagnosticsAPIKey  string `mapstructure:"diagnostics_api_key"`
	DiagnosticsTimeout int    `mapstructure:"diagnostics_timeout"`
}

// Load reads configuration from the config file, environment and command
// line flags. Flags take precedence over file values.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	setDefaults(v)

	flags := pflag.NewFlagSet("hmi", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Int("interval", DefaultInterval, "Simulation tick interval in milliseconds")
	flags.Int("history-size", DefaultHistorySize, "Number of telemetry samples kept in the rolling history")
	flags.Int("initial-load", DefaultInitialLoad, "Initial target load percentage")
	flags.String("listen", DefaultListenAddr, "HTTP listen address")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("telemetry", false, "Record telemetry samples to the local database")
	flags.String("database", DefaultDBPath, "Path to the telemetry database")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v.SetConfigName("hmi")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	v.AddConfigPath(".")
	if configPath := os.Getenv("HMI_CONFIG"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Only flags the user actually set override file values
	flags.Visit(func(f *pflag.Flag) {
		key := flagToKey(f.Name)
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.HistorySize <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history_size must be positive")
	}

	if c.InitialLoad < 0 || c.InitialLoad > maxTargetLoad {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "initial_load must be within 0-120")
	}

	if c.DiagnosticsTimeout <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "diagnostics_timeout must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Telemetry && c.Database == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "database path required when telemetry is enabled")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("history_size", DefaultHistorySize)
	v.SetDefault("initial_load", DefaultInitialLoad)
	v.SetDefault("listen", DefaultListenAddr)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultDBPath)
	v.SetDefault("diagnostics_url", "")
	v.SetDefault("diagnostics_api_key", "")
	v.SetDefault("diagnostics_timeout", DefaultDiagTimeout)
}

func flagToKey(name string) string {
	switch name {
	case "history-size":
		return "history_size"
	case "initial-load":
		return "initial_load"
	case "log-level":
		return "log_level"
	default:
		return name
	}
}
