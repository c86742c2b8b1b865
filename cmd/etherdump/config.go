package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/peachps/go-netdevice/netconfig"
	"github.com/peachps/go-netdevice/netdevice"
)

const (
	modeSocket = "socket"
	modeTap    = "tap"

	configuratorNetlink = "netlink"
	configuratorIP      = "ip"
)

// Config is the etherdump configuration.
//
// Values are read, in order of precedence, from the command line, ETHERDUMP_*
// environment variables (a .env file is honored), an optional YAML file and
// the defaults.
type Config struct {
	Interface       string        `yaml:"interface"`
	DevicePath      string        `yaml:"devicePath"`
	Address         string        `yaml:"address"`
	Configurator    string        `yaml:"configurator"`
	Sudo            bool          `yaml:"sudo"`
	PromiscuousOnly bool          `yaml:"promiscuousOnly"`
	Ping            string        `yaml:"ping"`
	PingCount       int           `yaml:"pingCount"`
	Count           int           `yaml:"count"`
	Timeout         time.Duration `yaml:"timeout"`
	Debug           bool          `yaml:"debug"`
}

func defaultConfig() *Config {
	return &Config{
		DevicePath:   netdevice.DefaultDevicePath,
		Address:      "10.0.0.2/24",
		Configurator: configuratorNetlink,
		PingCount:    3,
		Timeout:      3 * time.Second,
	}
}

// loadConfig builds the configuration from the defaults, the YAML file at path
// (if not empty) and the environment.
func loadConfig(path string, getenv func(string) string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)

		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err = yaml.Unmarshal(b, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file `%s`: %w", path, err)
		}
	}

	if err := applyEnv(config, getenv); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnv(config *Config, getenv func(string) string) error {
	if v := getenv("ETHERDUMP_INTERFACE"); v != "" {
		config.Interface = v
	}

	if v := getenv("ETHERDUMP_DEVICE"); v != "" {
		config.DevicePath = v
	}

	if v := getenv("ETHERDUMP_ADDRESS"); v != "" {
		config.Address = v
	}

	if v := getenv("ETHERDUMP_CONFIGURATOR"); v != "" {
		config.Configurator = v
	}

	if v := getenv("ETHERDUMP_PING"); v != "" {
		config.Ping = v
	}

	if v := getenv("ETHERDUMP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)

		if err != nil {
			return fmt.Errorf("invalid ETHERDUMP_TIMEOUT: %w", err)
		}

		config.Timeout = timeout
	}

	for name, target := range map[string]*bool{
		"ETHERDUMP_SUDO":             &config.Sudo,
		"ETHERDUMP_PROMISCUOUS_ONLY": &config.PromiscuousOnly,
		"ETHERDUMP_DEBUG":            &config.Debug,
	} {
		v := getenv(name)

		if v == "" {
			continue
		}

		b, err := strconv.ParseBool(v)

		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}

		*target = b
	}

	return nil
}

// interfaceFor returns the interface to use in mode.
func (c *Config) interfaceFor(mode string) string {
	if c.Interface != "" {
		return c.Interface
	}

	if mode == modeTap {
		return "tap0"
	}

	return "eth0"
}

func (c *Config) validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if c.Count < 0 {
		return errors.New("count cannot be negative")
	}

	switch c.Configurator {
	case configuratorNetlink, configuratorIP:
	default:
		return fmt.Errorf("unsupported configurator `%s`", c.Configurator)
	}

	return nil
}

func (c *Config) configurator() netconfig.Configurator {
	if c.Configurator == configuratorIP {
		if c.Sudo {
			return netconfig.NewCommand("sudo")
		}

		return netconfig.NewCommand()
	}

	return netconfig.NewNetlink()
}
