// Package main - Entry point for the mileage API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mileage/api"
	"mileage/internal/config"
	"mileage/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Config file (JSON or YAML)")
	addr := flag.String("addr", "", "Server address (default from config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	fmt.Printf("Mileage API Server v%s\n", version)
	fmt.Printf("   API: http://localhost%s\n", cfg.Server.Address)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.ListenAndServe(ctx, cfg, version, logging.Named("server")); err != nil {
		logging.Error(err.Error())
		os.Exit(1)
	}
}
