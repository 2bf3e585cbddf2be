// Package config loads and watches the watch-mode configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "90s"
// or "5m" as well as from plain nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		dd, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(dd)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig names one server to keep pinging.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type Config struct {
	Bind            string         `yaml:"bind"`
	Interval        Duration       `yaml:"interval"`
	Timeout         Duration       `yaml:"timeout"`
	StoragePath     string         `yaml:"storage"`
	ProtocolVersion int32          `yaml:"protocolNumber"`
	ResolveSRV      bool           `yaml:"resolveSRV"`
	Servers         []ServerConfig `yaml:"servers"`
}

type ConfigFunc func(cfg *Config)

func WithBindAddr(bindAddr string) ConfigFunc {
	return func(cfg *Config) {
		cfg.Bind = bindAddr
	}
}

func WithInterval(d time.Duration) ConfigFunc {
	return func(cfg *Config) {
		cfg.Interval = Duration(d)
	}
}

func AddServer(name, addr string) ConfigFunc {
	return func(cfg *Config) {
		cfg.Servers = append(cfg.Servers, ServerConfig{Name: name, Address: addr})
	}
}

func DefaultConfig() Config {
	return Config{
		Bind:            ":8380",
		Interval:        Duration(time.Minute),
		Timeout:         Duration(5 * time.Second),
		ProtocolVersion: -1,
		ResolveSRV:      true,
	}
}

func New(fns ...ConfigFunc) Config {
	cfg := DefaultConfig()
	for _, fn := range fns {
		fn(&cfg)
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", cfg.Interval.Std())
	}

	seen := map[string]struct{}{}
	for _, srv := range cfg.Servers {
		if srv.Address == "" {
			return fmt.Errorf("server %q has no address", srv.Name)
		}
		name := srv.DisplayName()
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate server name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// DisplayName is the name used in logs, metrics and storage. It falls back
// to the address for unnamed servers.
func (s ServerConfig) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Address
}

// FileProvider reads a config file and returns a populated Config.
type FileProvider struct {
	ConfigPath string
}

func (p FileProvider) Config() (Config, error) {
	f, err := os.Open(p.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode file %q: %w", p.ConfigPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", p.ConfigPath, err)
	}

	return cfg, nil
}
