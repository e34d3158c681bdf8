package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/filebridge/internal/artifact"
	"github.com/jonathan/filebridge/internal/files"
	"github.com/jonathan/filebridge/internal/observability"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <dir>",
	Short: "Collect a local directory and detect its project type",
	Long: `Walk a local directory, skipping ignored paths and binary files, detect the
project type, and print either a summary or the files as artifact markup followed
by the setup command.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectFormat   string
	inspectMaxFiles int
	inspectIgnore   []string
	inspectID       string
)

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", formatSummary, "Output format: summary or artifact")
	inspectCmd.Flags().IntVar(&inspectMaxFiles, "max-files", 0, "Maximum includable files (default from config or FILEBRIDGE_MAX_FILES)")
	inspectCmd.Flags().StringSliceVar(&inspectIgnore, "ignore", nil, "Extra ignore patterns added to the defaults")
	inspectCmd.Flags().StringVar(&inspectID, "id", "", "Artifact id (generated when empty)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != formatSummary && inspectFormat != formatArtifact {
		return fmt.Errorf("invalid --format %q: must be %s or %s", inspectFormat, formatSummary, formatArtifact)
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	maxFiles := inspectMaxFiles
	if maxFiles <= 0 {
		maxFiles = cfg.MaxFiles
	}

	patterns := append(files.DefaultIgnoreRules().Patterns(), inspectIgnore...)
	rules, err := files.NewIgnoreRules(patterns...)
	if err != nil {
		return err
	}

	collection, err := files.Collect(os.DirFS(dir), rules, maxFiles)
	if err != nil {
		return fmt.Errorf("failed to collect %s: %w", dir, err)
	}

	projectType := files.DetectProjectType(collection.Files)
	out := cmd.OutOrStdout()

	if inspectFormat == formatSummary {
		printer := observability.NewPrinter(out)
		printer.PrintCollection(collection)
		printer.PrintProjectType(projectType)
		return nil
	}

	set, err := collection.FileSet()
	if err != nil {
		return fmt.Errorf("failed to read files: %w", err)
	}
	id := inspectID
	if id == "" {
		id = artifact.NewID()
	}
	if _, err := io.WriteString(out, artifact.Serialize(set, id)); err != nil {
		return err
	}
	if projectType.IsRecognized() {
		_, err = fmt.Fprintf(out, "\n%s\n", projectType.SetupCommand)
	}
	return err
}
