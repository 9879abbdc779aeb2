package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chargecast/aggregator"
	"chargecast/api"
	"chargecast/datasource"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	configFile := flag.String("config", "config.yml", "Path to configuration file")
	port := flag.String("port", "", "Override the configured listen port")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable provider rate limiting")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		config.Listen.Port = *port
	}

	// Create the generation data provider
	var provider datasource.GenerationProvider = datasource.NewCarbonIntensityProvider(
		config.Provider.BaseURL, config.Provider.Timeout)
	logger.Info("using generation data provider",
		"provider", provider.Name(),
		"baseURL", config.Provider.BaseURL)

	// Apply rate limiting if enabled
	if *enableRateLimiting && config.Provider.RateLimit.Enabled {
		provider = datasource.NewRateLimitedProvider(provider,
			config.Provider.RateLimit.RPS, config.Provider.RateLimit.Burst)
		logger.Info("applied rate limiting to provider",
			"rps", config.Provider.RateLimit.RPS,
			"burst", config.Provider.RateLimit.Burst)
	}

	// Create the aggregation core and the API server
	agg := aggregator.New(provider, datasource.SystemClock{}, logger)
	addr := net.JoinHostPort(config.Listen.BindIP, config.Listen.Port)
	server := api.NewServer(agg, logger, addr, config.Metrics.Enabled)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
