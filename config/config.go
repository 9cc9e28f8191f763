package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Transports understood by cmd/toolalgo.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOOLALGO_"

// ErrInvalidConfig wraps every validation and parse failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the server settings.
type Config struct {
	Addr         string  `yaml:"addr"`
	Transport    string  `yaml:"transport"`
	LogLevel     string  `yaml:"logLevel"`
	LogJSON      bool    `yaml:"logJSON"`
	RateLimit    float64 `yaml:"rateLimit"`
	RateBurst    int     `yaml:"rateBurst"`
	BatchWorkers int     `yaml:"batchWorkers"`
	GeometryURL  string  `yaml:"geometryURL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:      ":8080",
		Transport: TransportStdio,
		LogLevel:  "info",
		RateBurst: 10,
	}
}

// Load returns Default overlaid with the YAML file at path (skipped when
// path is empty) and then with the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		if err := cfg.ReadYAML(f); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadYAML overlays the fields present in r. Unknown keys are rejected.
func (c *Config) ReadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: yaml: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overlays TOOLALGO_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	parse := func(key string, fn func(string) error) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return
		}
		if err := fn(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		}
	}

	str("ADDR", &c.Addr)
	str("TRANSPORT", &c.Transport)
	str("LOG_LEVEL", &c.LogLevel)
	str("GEOMETRY_URL", &c.GeometryURL)
	parse("LOG_JSON", func(s string) (err error) {
		c.LogJSON, err = strconv.ParseBool(s)
		return err
	})
	parse("RATE_LIMIT", func(s string) (err error) {
		c.RateLimit, err = strconv.ParseFloat(s, 64)
		return err
	})
	parse("RATE_BURST", func(s string) (err error) {
		c.RateBurst, err = strconv.Atoi(s)
		return err
	})
	parse("BATCH_WORKERS", func(s string) (err error) {
		c.BatchWorkers, err = strconv.Atoi(s)
		return err
	})

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Addr == "" {
			errs = append(errs, errors.New("addr is required for the http transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q", c.Transport))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rateLimit must not be negative, got %v", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rateBurst must be at least 1, got %d", c.RateBurst))
	}
	if c.BatchWorkers < 0 {
		errs = append(errs, fmt.Errorf("batchWorkers must not be negative, got %d", c.BatchWorkers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel. Empty means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("logLevel: %w", err)
	}
	return lvl, nil
}

// Logger builds a text or JSON logger writing to w at the configured level.
// An unparsable level falls back to info; call Validate first to catch it.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
