package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"file_load_root": "https://files.example.com/project/",
		"fetch_timeout": "15s",
		"port": 9090,
		"max_files": 200,
		"verbose": true
	}`

	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://files.example.com/project/", cfg.FileLoadRoot)
	assert.Equal(t, "15s", cfg.FetchTimeout)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 200, cfg.MaxFiles)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestValidate_NegativeMaxFiles(t *testing.T) {
	cfg := &Config{MaxFiles: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MaxFiles")
}

func TestValidate_BadTimeout(t *testing.T) {
	cfg := &Config{FetchTimeout: "soon"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch_timeout")
}

func TestValidate_FileLoadRoot(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		wantErr bool
	}{
		{name: "absolute URL", root: "https://files.example.com/base/"},
		{name: "absolute path", root: "/files/"},
		{name: "relative path", root: "files/"},
		{name: "dot relative path", root: "./static/"},
		{name: "unparseable", root: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{FileLoadRoot: tt.root}
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "FileLoadRoot")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_RelativeRootFromFile(t *testing.T) {
	t.Setenv(EnvFileLoadRoot, "")
	cfg, err := Load(writeConfig(t, `{"file_load_root": "files/"}`))
	require.NoError(t, err)
	assert.Equal(t, "files/", cfg.FileLoadRoot)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		FileLoadRoot: "/files/",
		FetchTimeout: "30s",
		Port:         8080,
		MaxFiles:     1000,
	}

	assert.NoError(t, cfg.Validate())
}

func TestTimeout(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.FetchTimeout = "2m"
	d, err = cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	cfg.FetchTimeout = "-1s"
	_, err = cfg.Timeout()
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		FileLoadRoot: "https://custom/",
	}

	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, "https://custom/", merged.FileLoadRoot)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultMaxFiles, merged.MaxFiles)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 1234}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 1234, merged.Port)
	assert.Empty(t, merged.FileLoadRoot)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvFileLoadRoot, "https://env-root/")
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvMaxFiles, "not-a-number")
	t.Setenv(EnvVerbose, "true")

	cfg := FromEnv()
	assert.Equal(t, "https://env-root/", cfg.FileLoadRoot)
	assert.Equal(t, 3000, cfg.Port)
	assert.Zero(t, cfg.MaxFiles)
	assert.True(t, cfg.Verbose)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv(EnvFileLoadRoot, "https://env-root/")
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvVerbose, "")

	cfg, err := Load(writeConfig(t, `{"file_load_root": "https://file-root/"}`))
	require.NoError(t, err)

	assert.Equal(t, "https://file-root/", cfg.FileLoadRoot)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.False(t, cfg.Verbose)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvFileLoadRoot, "")
	t.Setenv(EnvPort, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": -5}`))
	assert.Error(t, err)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvRole, "")
	t.Setenv(EnvDatabase, "")
	assert.Nil(t, CredentialsFromEnv())

	t.Setenv(EnvRole, "admin")
	creds := CredentialsFromEnv()
	require.NotNil(t, creds)
	assert.Equal(t, "admin", creds.Role)
	assert.Empty(t, creds.Token)
}
