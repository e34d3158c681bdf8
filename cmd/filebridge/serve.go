package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/filebridge/internal/config"
	"github.com/jonathan/filebridge/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP loader server",
	Long:  `Start an HTTP server that loads requested project files relative to the configured root URL.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srvCfg, err := serverConfig(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serverConfig builds the server configuration, letting --port win over the resolved port.
func serverConfig(cfg *config.Config) (server.Config, error) {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}
	if port < 1 || port > 65535 {
		return server.Config{}, fmt.Errorf("invalid port: %d", port)
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return server.Config{}, err
	}

	return server.Config{
		Port:         port,
		FileLoadRoot: cfg.FileLoadRoot,
		FetchTimeout: timeout,
		Verbose:      cfg.Verbose,
	}, nil
}
