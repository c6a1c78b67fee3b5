// Package config loads fitsinfo settings from an optional YAML file,
// FITSINFO_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/robert-malhotra/go-fits/internal/logger"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores (FITSINFO_LOG_LEVEL, FITSINFO_S3_REGION, ...).
const EnvPrefix = "FITSINFO"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrInvalid is returned for configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the fitsinfo configuration.
type Config struct {
	Log     logger.Config `mapstructure:"log"`
	Output  string        `mapstructure:"output"`
	Workers int           `mapstructure:"workers"`
	S3      S3Config      `mapstructure:"s3"`
	GCS     GCSConfig     `mapstructure:"gcs"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Trace   TraceConfig   `mapstructure:"trace"`
}

// S3Config configures s3:// access.
type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// GCSConfig configures gs:// access.
type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// MetricsConfig configures the Prometheus textfile written on exit.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// TraceConfig enables OpenTelemetry spans printed to stderr.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// FlagKeys maps command-line flag names onto configuration keys.
var FlagKeys = map[string]string{
	"log-level":       "log.level",
	"log-encoding":    "log.encoding",
	"output":          "output",
	"workers":         "workers",
	"s3-region":       "s3.region",
	"s3-endpoint":     "s3.endpoint",
	"gcs-credentials": "gcs.credentials_file",
	"metrics-file":    "metrics.file",
	"trace":           "trace.enabled",
}

func setDefaults(v *viper.Viper) {
	d := logger.DefaultConfig()
	v.SetDefault("log.level", d.Level)
	v.SetDefault("log.encoding", d.Encoding)
	v.SetDefault("log.development", d.Development)
	v.SetDefault("log.output_paths", d.OutputPaths)
	v.SetDefault("output", OutputText)
	v.SetDefault("workers", 4)
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("gcs.credentials_file", "")
	v.SetDefault("metrics.file", "")
	v.SetDefault("trace.enabled", false)
}

// Load reads configuration. path may be empty; flags may be nil. Only flags
// the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding %q (want json or console)", ErrInvalid, c.Log.Encoding)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q (want text, json or yaml)", ErrInvalid, c.Output)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	return nil
}
