// Package main provides the entry point for the FileBridge CLI and HTTP loader server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/filebridge/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "filebridge",
	Short: "Seed chat sessions with project files",
	Long: "FileBridge loads project files from a remote root URL or a local directory, " +
		"detects how the project is run, and renders the files as artifact markup.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
}

// loadConfig resolves the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
