package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInput  = "city.geojson"
	DefaultOutput = "roads.csv"
)

// Config holds all application configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
}

type InputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// ResolvedFormat returns the input format, guessing it from the file name
// when set to "auto".
func (c InputConfig) ResolvedFormat() string {
	if c.Format != "auto" {
		return c.Format
	}
	if strings.HasSuffix(strings.ToLower(c.Path), ".pbf") {
		return "pbf"
	}
	return "geojson"
}

type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

var flagKeys = map[string]string{
	"input":          "input.path",
	"input-format":   "input.format",
	"output":         "output.path",
	"output-format":  "output.format",
	"workers":        "pipeline.workers",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"addr":           "server.addr",
	"max-body-bytes": "server.max_body_bytes",
}

// Load reads configuration from defaults, an optional config file, the
// environment and the command line, in increasing order of precedence.
// Up to two positional arguments override the input and output paths.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("input.path", DefaultInput)
	v.SetDefault("input.format", "auto")
	v.SetDefault("output.path", DefaultOutput)
	v.SetDefault("output.format", "csv")
	v.SetDefault("pipeline.workers", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_bytes", 64<<20)

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	configFile := fs.StringP("config", "c", "", "configuration file")
	fs.StringP("input", "i", DefaultInput, "input file (GeoJSON or OSM PBF)")
	fs.String("input-format", "auto", "input format: auto, geojson or pbf")
	fs.StringP("output", "o", DefaultOutput, "output file")
	fs.String("output-format", "csv", "output format: csv or json")
	fs.IntP("workers", "w", 1, "number of extraction workers")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("addr", ":8080", "listen address of the HTTP server")
	fs.Int64("max-body-bytes", 64<<20, "largest accepted request body")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", flag)
		}
	}

	// Config file (optional unless given explicitly)
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", *configFile)
		}
	} else {
		v.SetConfigName("road-export")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	// Environment variables: ROADEXPORT_INPUT_PATH → input.path
	v.SetEnvPrefix("ROADEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch positional := fs.Args(); len(positional) {
	case 0:
	case 1:
		v.Set("input.path", positional[0])
	case 2:
		v.Set("input.path", positional[0])
		v.Set("output.path", positional[1])
	default:
		return nil, errors.Newf("expected at most two arguments, got %d", len(positional))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Input.Path == "" {
		errs = append(errs, "input.path is required")
	}
	switch c.Input.Format {
	case "auto", "geojson", "pbf":
	default:
		errs = append(errs, fmt.Sprintf("input.format must be auto, geojson or pbf, got %q", c.Input.Format))
	}
	if c.Output.Path == "" {
		errs = append(errs, "output.path is required")
	}
	switch c.Output.Format {
	case "csv", "json":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be csv or json, got %q", c.Output.Format))
	}
	if c.Pipeline.Workers < 1 {
		errs = append(errs, fmt.Sprintf("pipeline.workers must be positive, got %d", c.Pipeline.Workers))
	}
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "server.max_body_bytes must be positive")
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
