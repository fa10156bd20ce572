package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"i4.energy/across/sw42dagw/device"
)

func main() {
	flag.String("config", "", "YAML configuration file")
	flag.String("device", "", "Transport URL (socket://host:port?baud=N or serial:///dev/ttyUSB0?baud=N)")
	flag.String("host", "192.168.67.31", "Host of the serial-over-IP bridge")
	flag.Int("port", 8000, "TCP port of the serial-over-IP bridge")
	flag.String("serial-port", "", "Local serial port, used instead of the bridge when set")
	flag.Int("baud-rate", device.DefaultBaudRate, "Baud rate of the RS-232 link")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Duration("poll-interval", 30*time.Second, "Interval between STATUS refreshes")
	flag.Duration("idle-timeout", device.DefaultIdleTimeout, "Silence that ends a response")
	flag.StringSlice("input-names", []string{"INPUT1", "INPUT2", "INPUT3", "INPUT4"}, "Display names of inputs 1..4")
	dump := flag.Bool("dump", false, "Print one status snapshot as YAML and exit")
	send := flag.String("send", "", "Send one raw command, print the response and exit")
	flag.Parse()

	configPath, _ := flag.CommandLine.GetString("config")
	if configPath == "" {
		configPath = os.Getenv("SW42DA_CONFIG")
	}

	config, err := LoadConfig(WithDefaults(), WithFile(configPath), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	dialer, err := config.Dialer()
	if err != nil {
		logger.Error("Invalid device address", "error", err)
		os.Exit(1)
	}

	deviceConfig, err := device.NewConfigBuilder().
		WithDialer(dialer).
		WithIdleTimeout(config.IdleTimeout).
		WithLogger(logger.With("component", "device")).
		Build()
	if err != nil {
		logger.Error("Failed to create device config", "error", err)
		os.Exit(1)
	}

	client, err := device.New(deviceConfig)
	if err != nil {
		logger.Error("Failed to create device client", "error", err)
		os.Exit(1)
	}

	switch {
	case *send != "":
		if err := runSend(context.Background(), client, *send, os.Stdout); err != nil {
			logger.Error("Command failed", "device", client, "error", err)
			os.Exit(1)
		}
		return
	case *dump:
		if err := runDump(context.Background(), client, os.Stdout); err != nil {
			logger.Error("Status dump failed", "device", client, "error", err)
			os.Exit(1)
		}
		return
	}

	controls, err := NewCatalog(config.InputNames)
	if err != nil {
		logger.Error("Failed to build control catalog", "error", err)
		os.Exit(1)
	}

	hub := NewHub(logger.With("component", "websocket"))
	poller := &Poller{
		Device:   client,
		Interval: config.PollInterval,
		Logger:   logger.With("component", "poller"),
		OnUpdate: hub.Publish,
	}

	logger.Info("Starting SW42DA gateway", "device", client, "poll_interval", config.PollInterval)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go poller.Run(ctx)

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:   logger.With("component", "server"),
			Poller:   poller,
			Hub:      hub,
			Controls: controls,
			Config:   config,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	logger.Info("Stopping poller")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}

// runSend prints the raw response lines of one command.
func runSend(ctx context.Context, d Device, cmd string, w io.Writer) error {
	resp, err := d.Send(ctx, cmd)
	if err != nil {
		return err
	}
	for _, line := range resp {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// runDump prints one parsed snapshot as YAML.
func runDump(ctx context.Context, d Device, w io.Writer) error {
	snapshot, err := d.Status(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return err
	}
	return enc.Close()
}
