// Package config loads run settings from defaults, an optional TOML file,
// OASAMPLES_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/openapi"
)

// EnvPrefix prefixes every environment variable, e.g. OASAMPLES_SERVE_ADDR.
const EnvPrefix = "OASAMPLES"

// Config is the effective configuration of one invocation.
type Config struct {
	Targets   []string    `mapstructure:"targets" toml:"targets"`
	Verbosity int         `mapstructure:"verbosity" toml:"verbosity"`
	LogJSON   bool        `mapstructure:"log_json" toml:"log_json"`
	Serve     ServeConfig `mapstructure:"serve" toml:"serve"`
	Watch     WatchConfig `mapstructure:"watch" toml:"watch"`
}

// ServeConfig configures the documentation server.
type ServeConfig struct {
	Addr     string `mapstructure:"addr" toml:"addr"`
	UI       string `mapstructure:"ui" toml:"ui"`
	BasePath string `mapstructure:"base_path" toml:"base_path"`
	Title    string `mapstructure:"title" toml:"title"`
	MaxConns int    `mapstructure:"max_conns" toml:"max_conns"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// SetDefaults registers every key with its default value. Environment
// variables only apply to registered keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("targets", []string{})
	v.SetDefault("verbosity", 0)
	v.SetDefault("log_json", false)

	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.ui", "redoc")
	v.SetDefault("serve.base_path", "/")
	v.SetDefault("serve.title", "")
	v.SetDefault("serve.max_conns", 64)

	v.SetDefault("watch.debounce_ms", 200)
}

// New returns a viper instance with defaults, the environment and, when
// path is not empty, the given TOML file.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Config(errors.Wrapf(err, "read config file %s", path))
		}
	}

	return v, nil
}

// BindFlags binds the flags named in keys (flag name to config key). A
// flag only overrides the other sources when it is set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = errors.Wrapf(err, "bind flag --%s", f.Name)
		}
	})
	return bindErr
}

// Load decodes and validates the effective configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Config(errors.Wrap(err, "decode configuration"))
	}
	cfg.Targets = splitTargets(cfg.Targets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return errors.Config(errors.Newf("verbosity must be >= 0, got %d", c.Verbosity))
	}
	if _, ok := openapi.ParseDocsUI(c.Serve.UI); !ok {
		return errors.WithHint(
			errors.Config(errors.Newf("unknown docs UI %q", c.Serve.UI)),
			"use one of: redoc, swagger-ui, rapidoc",
		)
	}
	if c.Serve.MaxConns < 0 {
		return errors.Config(errors.Newf("serve.max_conns must be >= 0, got %d", c.Serve.MaxConns))
	}
	if c.Watch.DebounceMS < 0 {
		return errors.Config(errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS))
	}
	return nil
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "encode configuration")
	}
	return data, nil
}

// splitTargets accepts both repeated values and comma-separated lists.
func splitTargets(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
