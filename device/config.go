package device

import (
	"log/slog"
	"time"
)

const (
	// DefaultIdleTimeout is how long a read may stay silent before the
	// response is considered complete.
	DefaultIdleTimeout = 500 * time.Millisecond
	// DefaultDialTimeout bounds connecting when the context has no deadline.
	DefaultDialTimeout = 5 * time.Second
	// DefaultMaxLineLength bounds a single response line.
	DefaultMaxLineLength = 16 * 1024
)

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

type Config struct {
	Dialer        Dialer
	IdleTimeout   time.Duration
	DialTimeout   time.Duration
	MaxLineLength int
	Logger        *slog.Logger
}

func (c *Config) setDefaults() {
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.MaxLineLength == 0 {
		c.MaxLineLength = DefaultMaxLineLength
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// ConfigBuilder assembles a Config step by step.
//
//	config, err := device.NewConfigBuilder().
//		WithDialer(device.SocketDialer{Host: "192.168.67.31", Port: 8000}).
//		WithIdleTimeout(time.Second).
//		Build()
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithIdleTimeout(d time.Duration) *ConfigBuilder {
	b.config.IdleTimeout = d
	return b
}

func (b *ConfigBuilder) WithDialTimeout(d time.Duration) *ConfigBuilder {
	b.config.DialTimeout = d
	return b
}

func (b *ConfigBuilder) WithMaxLineLength(n int) *ConfigBuilder {
	b.config.MaxLineLength = n
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
