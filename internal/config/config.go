package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CristiGvl/smcmon/internal/smc"
)

// Sections selects which readouts are collected.
type Sections struct {
	CPU     bool `yaml:"cpu"`
	Disk    bool `yaml:"disk"`
	Fans    bool `yaml:"fans"`
	Memory  bool `yaml:"memory"`
	GPU     bool `yaml:"gpu"`
	Battery bool `yaml:"battery"`
}

// All returns every section enabled.
func All() Sections {
	return Sections{CPU: true, Disk: true, Fans: true, Memory: true, GPU: true, Battery: true}
}

// Any reports whether at least one section is enabled.
func (s Sections) Any() bool {
	return s.CPU || s.Disk || s.Fans || s.Memory || s.GPU || s.Battery
}

// Temperatures lists the SMC keys read for each temperature group.
type Temperatures struct {
	CPU     []string `yaml:"cpu"`
	GPU     []string `yaml:"gpu"`
	Memory  []string `yaml:"memory"`
	Battery []string `yaml:"battery"`
	System  []string `yaml:"system"`
}

// Server configures the HTTP API.
type Server struct {
	Bind string `yaml:"bind"`
	Port string `yaml:"port"`
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return s.Bind + ":" + s.Port
}

// Config is the monitor configuration.
type Config struct {
	Interval     time.Duration `yaml:"interval"`
	Sections     Sections      `yaml:"sections"`
	Temperatures Temperatures  `yaml:"temperatures"`
	CacheKeyInfo bool          `yaml:"cache_key_info"`
	DiskPath     string        `yaml:"disk_path"`
	Server       Server        `yaml:"server"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Interval: time.Second,
		Sections: All(),
		Temperatures: Temperatures{
			CPU:     []string{smc.CPU0Proximity.String()},
			GPU:     []string{smc.GPU0Proximity.String()},
			Memory:  []string{smc.MemorySlotsProximity.String()},
			Battery: []string{smc.Battery0.String()},
		},
		CacheKeyInfo: true,
		DiskPath:     "/",
		Server:       Server{Bind: "0.0.0.0", Port: "8080"},
		LogLevel:     "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the interval and every configured key.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if !c.Sections.Any() {
		return errors.New("no sections enabled")
	}
	_, err := c.Sensors()
	return err
}

// Sensors resolves the configured temperature keys against the catalog,
// keeping the group they were configured under.
func (c *Config) Sensors() ([]smc.Sensor, error) {
	groups := []struct {
		group smc.Group
		keys  []string
	}{
		{smc.GroupCPU, c.Temperatures.CPU},
		{smc.GroupGPU, c.Temperatures.GPU},
		{smc.GroupMemory, c.Temperatures.Memory},
		{smc.GroupBattery, c.Temperatures.Battery},
		{smc.GroupSystem, c.Temperatures.System},
	}

	var sensors []smc.Sensor
	for _, g := range groups {
		for _, k := range g.keys {
			key, err := smc.ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("temperatures.%s: %w", g.group, err)
			}
			s := smc.Lookup(key)
			s.Group = g.group
			sensors = append(sensors, s)
		}
	}
	return sensors, nil
}
