package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/filebridge/internal/artifact"
	"github.com/jonathan/filebridge/internal/config"
	"github.com/jonathan/filebridge/internal/fetch"
	"github.com/jonathan/filebridge/internal/observability"
	"github.com/jonathan/filebridge/internal/types"
)

// Output formats shared by load and inspect.
const (
	formatJSON     = "json"
	formatArtifact = "artifact"
	formatSummary  = "summary"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load project files from a root URL",
	Long: `Fetch the given paths relative to a root URL, concurrently, and print the
loaded files as JSON or artifact markup. Paths under "api/" carry the credential
headers; a failing path is reported and left out without failing the command.`,
	RunE: runLoad,
}

var (
	loadRoot     string
	loadFiles    []string
	loadToken    string
	loadRole     string
	loadDatabase string
	loadFormat   string
	loadID       string
	loadVerbose  bool
)

func init() {
	loadCmd.Flags().StringVar(&loadRoot, "root", "", "Root URL the paths are relative to (default from config or FILELOADROOT)")
	loadCmd.Flags().StringSliceVar(&loadFiles, "files", nil, "Comma-separated paths to load (required)")
	loadCmd.Flags().StringVar(&loadToken, "token", "", "Bearer token for api/ paths (overrides FILEBRIDGE_TOKEN)")
	loadCmd.Flags().StringVar(&loadRole, "role", "", "Role header for api/ paths (overrides FILEBRIDGE_ROLE)")
	loadCmd.Flags().StringVar(&loadDatabase, "database", "", "Database header for api/ paths (overrides FILEBRIDGE_DATABASE)")
	loadCmd.Flags().StringVar(&loadFormat, "format", formatJSON, "Output format: json or artifact")
	loadCmd.Flags().StringVar(&loadID, "id", "", "Artifact id (generated when empty)")
	loadCmd.Flags().BoolVarP(&loadVerbose, "verbose", "v", false, "Log requests and print a summary to stderr")

	_ = loadCmd.MarkFlagRequired("files")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if loadFormat != formatJSON && loadFormat != formatArtifact {
		return fmt.Errorf("invalid --format %q: must be %s or %s", loadFormat, formatJSON, formatArtifact)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := loadRoot
	if root == "" {
		root = cfg.FileLoadRoot
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	req := types.FileLoadRequest{
		RootURL:     root,
		Paths:       cleanPaths(loadFiles),
		Credentials: loadCredentials(),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid load request: %w", err)
	}

	verbose := loadVerbose || cfg.Verbose
	opts := fetch.DefaultOptions()
	opts.Timeout = timeout
	loader := fetch.NewLoader(&fetch.LoaderOptions{Options: opts, Verbose: verbose})

	result := loader.Load(context.Background(), req)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintLoadResult(result)
	}

	return writeLoadResult(cmd.OutOrStdout(), result, loadFormat, loadID)
}

// loadCredentials merges credential flags over the environment.
func loadCredentials() *types.Credentials {
	creds := config.CredentialsFromEnv()
	if creds == nil {
		creds = &types.Credentials{}
	}
	if loadToken != "" {
		creds.Token = loadToken
	}
	if loadRole != "" {
		creds.Role = loadRole
	}
	if loadDatabase != "" {
		creds.Database = loadDatabase
	}
	if creds.IsZero() {
		return nil
	}
	return creds
}

// cleanPaths trims each path and drops empty entries.
func cleanPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeLoadResult(w io.Writer, result *types.LoadResult, format, id string) error {
	if format == formatArtifact {
		if id == "" {
			id = artifact.NewID()
		}
		_, err := io.WriteString(w, artifact.Serialize(result.Files, id))
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
