package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jimdowning-cyclops/versioning-go/internal/store"
)

// Output formats for the bump result.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Flag names, also used as configuration keys.
const (
	KeyFile      = "file"
	KeyOutput    = "output"
	KeyDryRun    = "dry-run"
	KeyTag       = "tag"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

// Config holds the settings for a single invocation.
type Config struct {
	Path      string `mapstructure:"file"`
	Output    string `mapstructure:"output"`
	DryRun    bool   `mapstructure:"dry-run"`
	Tag       bool   `mapstructure:"tag"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Path:      store.DefaultPath,
		Output:    OutputText,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP(KeyFile, "f", d.Path, "Path to the version file")
	fs.StringP(KeyOutput, "o", d.Output, "Output format (text, json, yaml)")
	fs.Bool(KeyDryRun, d.DryRun, "Print the next version without writing the file")
	fs.Bool(KeyTag, d.Tag, "Create a git tag for the new version")
	fs.String(KeyLogLevel, d.LogLevel, "Set the log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, d.LogFormat, "Set the log format (text, json)")
}

// Load builds a Config from the parsed flags in fs.
// Only flags are consulted; no config file or environment is read.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyFile, d.Path)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyDryRun, d.DryRun)
	v.SetDefault(KeyTag, d.Tag)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
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

// Validate checks that the config is valid. All problems are reported together.
func (c *Config) Validate() error {
	var merr error

	if strings.TrimSpace(c.Path) == "" {
		merr = multierror.Append(merr, fmt.Errorf("version file path must not be empty"))
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		merr = multierror.Append(merr, fmt.Errorf("unknown output format %q (expected text, json or yaml)", c.Output))
	}

	if merr != nil {
		return fmt.Errorf("invalid config: %w", merr)
	}

	return nil
}
