package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jonathan/filebridge/internal/config"
)

// newTestCommand returns a command whose stdout and stderr are captured.
func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

// isolateEnv clears every variable the CLI reads and resets flag state.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvFileLoadRoot, config.EnvPort, config.EnvVerbose, config.EnvFetchTimeout,
		config.EnvMaxFiles, config.EnvToken, config.EnvRole, config.EnvDatabase,
	} {
		t.Setenv(key, "")
	}

	configPath = ""
	servePort = 0
	loadRoot, loadToken, loadRole, loadDatabase, loadID = "", "", "", "", ""
	loadFiles = nil
	loadFormat = formatJSON
	loadVerbose = false
	inspectFormat = formatSummary
	inspectMaxFiles = 0
	inspectIgnore = nil
	inspectID = ""
}
