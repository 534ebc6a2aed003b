// Package config loads NotePipe settings.
// Precedence, lowest first: built-in defaults, YAML config file,
// NOTEPIPE_* environment variables, command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	DataDir string       `yaml:"data_dir"`
	Store   StoreConfig  `yaml:"store"`
	Server  ServerConfig `yaml:"server"`
	Watch   WatchConfig  `yaml:"watch"`
	Log     LogConfig    `yaml:"log"`
	Export  ExportConfig `yaml:"export"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		Store:   StoreConfig{Backend: "json"},
		Server:  ServerConfig{Addr: "127.0.0.1:8420"},
		Watch:   WatchConfig{Debounce: 100 * time.Millisecond},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/notepipe/config.yaml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notepipe", "config.yaml")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "notepipe", "data")
	}
	return "./data"
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path means DefaultPath, which may be missing; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"NOTEPIPE_DATA_DIR":      &c.DataDir,
		"NOTEPIPE_STORE_BACKEND": &c.Store.Backend,
		"NOTEPIPE_SERVER_ADDR":   &c.Server.Addr,
		"NOTEPIPE_LOG_LEVEL":     &c.Log.Level,
		"NOTEPIPE_LOG_FORMAT":    &c.Log.Format,
		"NOTEPIPE_OUTPUT_DIR":    &c.Export.OutputDir,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	if v, ok := lookup("NOTEPIPE_WATCH_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NOTEPIPE_WATCH_DEBOUNCE: %w", err)
		}
		c.Watch.Debounce = d
	}
	return nil
}

// ApplyFlags overrides settings with the flags that were set on fs.
// Flags that are not defined on fs are skipped.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	str := map[string]*string{
		"data_dir":   &c.DataDir,
		"store":      &c.Store.Backend,
		"addr":       &c.Server.Addr,
		"log_level":  &c.Log.Level,
		"log_format": &c.Log.Format,
		"output_dir": &c.Export.OutputDir,
	}
	for name, dst := range str {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if f := fs.Lookup("debounce"); f != nil && f.Changed {
		d, err := fs.GetDuration("debounce")
		if err != nil {
			return err
		}
		c.Watch.Debounce = d
	}
	return c.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store.backend must be json or sqlite, got %q", c.Store.Backend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// NewLogger builds the logrus logger described by the log settings.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if strings.EqualFold(c.Log.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
