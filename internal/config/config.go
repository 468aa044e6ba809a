// Package config loads juju-dotty settings from defaults, JUJU_DOTTY_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"flag"
	"io"
	"strings"

	"github.com/knadh/koanf/providers/basicflag"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// JUJU_DOTTY_NAGIOS_PREFIX for the nagios-prefix key.
const EnvPrefix = "JUJU_DOTTY_"

type Config struct {
	NagiosFile   string   `koanf:"nagios-file"`
	NagiosURL    string   `koanf:"nagios-url"`
	NagiosPrefix string   `koanf:"nagios-prefix"`
	Exclude      string   `koanf:"exclude"`
	Include      string   `koanf:"include"`
	Output       string   `koanf:"output"`
	Title        string   `koanf:"title"`
	KeyValues    []string `koanf:"key-value"`
	Watch        bool     `koanf:"watch"`

	ListenAddr string `koanf:"listen-addr"`
	Port       int    `koanf:"port"`
	CORSOrigin string `koanf:"cors-origin"`

	LogLevel string `koanf:"log-level"`
}

func Default() Config {
	return Config{
		Port:       8080,
		CORSOrigin: "*",
		LogLevel:   "info",
	}
}

// Load reads the environment on top of the defaults.
func Load() (*Config, error) {
	return load(func(*koanf.Koanf) error { return nil })
}

// LoadFlagSet reads the environment, then every flag explicitly set on fs.
func LoadFlagSet(fs *flag.FlagSet) (*Config, error) {
	return load(func(k *koanf.Koanf) error {
		set := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
		fs.Visit(func(f *flag.Flag) {
			set.Var(f.Value, f.Name, f.Usage)
		})
		return k.Load(basicflag.Provider(set, "."), nil)
	})
}

// LoadPFlags reads the environment, then every changed cobra flag.
func LoadPFlags(fs *pflag.FlagSet) (*Config, error) {
	return load(func(k *koanf.Koanf) error {
		var err error
		fs.Visit(func(f *pflag.Flag) {
			if err != nil {
				return
			}
			var value any = f.Value.String()
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				value = sv.GetSlice()
			}
			err = k.Set(f.Name, value)
		})
		return err
	})
}

func load(flags func(k *koanf.Koanf) error) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment")
	}
	if err := flags(k); err != nil {
		return nil, errors.Wrap(err, "failed to load flags")
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return &cfg, nil
}

// envKey maps JUJU_DOTTY_NAGIOS_URL to nagios-url.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

// SetupLogging points logrus at out with the configured level.
func (c *Config) SetupLogging(out io.Writer) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	logrus.SetOutput(out)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}
