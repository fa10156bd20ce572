package device_test

import (
	"testing"
	"time"

	"i4.energy/across/sw42dagw/device"
)

func TestConfig(t *testing.T) {
	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		_, err := device.NewConfigBuilder().Build()

		if err != device.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("ErrNoDialer from New", func(t *testing.T) {
		_, err := device.New(device.Config{})

		if err != device.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("Defaults are filled in", func(t *testing.T) {
		config, err := device.NewConfigBuilder().
			WithDialer(device.SocketDialer{Host: "10.0.0.2", Port: 8000}).
			Build()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.IdleTimeout != device.DefaultIdleTimeout {
			t.Errorf("expected idle timeout %v, got %v", device.DefaultIdleTimeout, config.IdleTimeout)
		}
		if config.DialTimeout != device.DefaultDialTimeout {
			t.Errorf("expected dial timeout %v, got %v", device.DefaultDialTimeout, config.DialTimeout)
		}
		if config.MaxLineLength != device.DefaultMaxLineLength {
			t.Errorf("expected max line length %d, got %d", device.DefaultMaxLineLength, config.MaxLineLength)
		}
		if config.Logger == nil {
			t.Error("expected a logger")
		}
	})

	t.Run("Explicit values are kept", func(t *testing.T) {
		config, err := device.NewConfigBuilder().
			WithDialer(device.SocketDialer{Host: "10.0.0.2", Port: 8000}).
			WithIdleTimeout(time.Second).
			WithDialTimeout(time.Minute).
			WithMaxLineLength(512).
			Build()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.IdleTimeout != time.Second || config.DialTimeout != time.Minute || config.MaxLineLength != 512 {
			t.Errorf("unexpected config %+v", config)
		}
	})
}
