package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"i4.energy/across/sw42dagw/device"
	"i4.energy/across/sw42dagw/proto"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address"`
	// Device is a transport URL (e.g. "socket://192.168.67.31:8000?baud=57600").
	// When set it takes precedence over Host, Port and SerialPort.
	Device string `yaml:"device"`
	// Host is the serial-over-IP bridge in front of the matrix
	Host string `yaml:"host"`
	// Port is the TCP port of the bridge
	Port int `yaml:"port"`
	// SerialPort is a local serial port (e.g. "/dev/ttyUSB0"). When set the
	// matrix is reached directly instead of through the bridge.
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate of the RS-232 link (e.g. 57600)
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// PollInterval is how often the STATUS report is refreshed
	PollInterval time.Duration `yaml:"poll_interval"`
	// IdleTimeout ends a response after the line stays silent this long
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// InputNames are the display names of inputs 1..4
	InputNames []string `yaml:"input_names"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if len(c.InputNames) != proto.MaxInput {
		return fmt.Errorf("config: %d input names given, want %d", len(c.InputNames), proto.MaxInput)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("config: poll interval must be positive, got %v", c.PollInterval)
	}
	return nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.Host = "192.168.67.31"
		c.Port = 8000
		c.BaudRate = device.DefaultBaudRate
		c.LogLevel = "info"
		c.PollInterval = 30 * time.Second
		c.IdleTimeout = device.DefaultIdleTimeout
		c.InputNames = []string{"INPUT1", "INPUT2", "INPUT3", "INPUT4"}
		return nil
	}
}

// WithFile overlays the keys present in a YAML file. An empty path is a no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if dev := os.Getenv("SW42DA_DEVICE"); dev != "" {
			c.Device = dev
		}

		if host := os.Getenv("SW42DA_HOST"); host != "" {
			c.Host = host
		}

		if port := os.Getenv("SW42DA_PORT"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				c.Port = p
			}
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if interval := os.Getenv("POLL_INTERVAL"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil {
				c.PollInterval = d
			}
		}

		if idle := os.Getenv("IDLE_TIMEOUT"); idle != "" {
			if d, err := time.ParseDuration(idle); err == nil {
				c.IdleTimeout = d
			}
		}

		if names := os.Getenv("INPUT_NAMES"); names != "" {
			c.InputNames = trimNames(strings.Split(names, ","))
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags that were set
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "device":
				c.Device = f.Value.String()
			case "host":
				c.Host = f.Value.String()
			case "port":
				if p, perr := strconv.Atoi(f.Value.String()); perr == nil {
					c.Port = p
				}
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, perr := strconv.Atoi(f.Value.String()); perr == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "poll-interval":
				if d, derr := fSet.GetDuration(f.Name); derr == nil {
					c.PollInterval = d
				}
			case "idle-timeout":
				if d, derr := fSet.GetDuration(f.Name); derr == nil {
					c.IdleTimeout = d
				}
			case "input-names":
				if names, serr := fSet.GetStringSlice(f.Name); serr == nil {
					c.InputNames = trimNames(names)
				}
			}
		})
		return nil
	}
}

// Dialer returns the transport the configuration points at.
func (c *Config) Dialer() (device.Dialer, error) {
	switch {
	case c.Device != "":
		return device.ParseURL(c.Device)
	case c.SerialPort != "":
		return device.SerialDialer{PortName: c.SerialPort, BaudRate: c.BaudRate}, nil
	default:
		return device.SocketDialer{Host: c.Host, Port: c.Port, BaudRate: c.BaudRate}, nil
	}
}

// trimNames drops the padding around comma separated names ("Kodi, PC").
func trimNames(names []string) []string {
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names
}

// InputNumber maps an input display name to its number 1..4.
func (c *Config) InputNumber(name string) (int, bool) {
	for i, n := range c.InputNames {
		if strings.EqualFold(n, name) {
			return i + proto.MinInput, true
		}
	}
	return 0, false
}
