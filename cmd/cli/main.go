// Package main is the entry point for the mileage CLI.
package main

import (
	"os"

	"mileage/cmd/cli/cmd"
	"mileage/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
