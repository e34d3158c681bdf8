package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/filebridge/internal/config"
	"github.com/jonathan/filebridge/internal/types"
)

func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.html":
			_, _ = w.Write([]byte("<h1>hello</h1>"))
		case "/api/me.json":
			if r.Header.Get("Authorization") != "Bearer secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"me":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunLoad_JSON(t *testing.T) {
	isolateEnv(t)
	srv := newFileServer(t)

	loadRoot = srv.URL + "/"
	loadFiles = []string{"index.html", " missing.js ", ""}

	cmd, stdout, _ := newTestCommand()
	require.NoError(t, runLoad(cmd, nil))

	var result types.LoadResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, []string{"index.html"}, result.Files.Paths())
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "missing.js", result.Failures[0].Path)
	assert.Equal(t, http.StatusNotFound, result.Failures[0].StatusCode)
}

func TestRunLoad_Artifact(t *testing.T) {
	isolateEnv(t)
	srv := newFileServer(t)

	loadRoot = srv.URL + "/"
	loadFiles = []string{"index.html"}
	loadFormat = formatArtifact
	loadID = "abc123"

	cmd, stdout, _ := newTestCommand()
	require.NoError(t, runLoad(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, `<boltArtifact id="abc123" title="User Updated Files">`)
	assert.Contains(t, out, `<boltAction type="file" filePath="index.html">`)
	assert.Contains(t, out, "<h1>hello</h1>")
}

func TestRunLoad_CredentialsFromEnv(t *testing.T) {
	isolateEnv(t)
	srv := newFileServer(t)
	t.Setenv(config.EnvToken, "secret")

	loadRoot = srv.URL + "/"
	loadFiles = []string{"api/me.json"}

	cmd, stdout, _ := newTestCommand()
	require.NoError(t, runLoad(cmd, nil))

	var result types.LoadResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	me, ok := result.Files.Get("api/me.json")
	require.True(t, ok)
	assert.Equal(t, `{"me":true}`, me.Content)
}

func TestRunLoad_RootFromEnv(t *testing.T) {
	isolateEnv(t)
	srv := newFileServer(t)
	t.Setenv(config.EnvFileLoadRoot, srv.URL+"/")

	loadFiles = []string{"index.html"}

	cmd, stdout, _ := newTestCommand()
	require.NoError(t, runLoad(cmd, nil))
	assert.Contains(t, stdout.String(), "hello")
}

func TestRunLoad_VerbosePrintsSummary(t *testing.T) {
	isolateEnv(t)
	srv := newFileServer(t)

	loadRoot = srv.URL + "/"
	loadFiles = []string{"index.html"}
	loadVerbose = true

	cmd, _, stderr := newTestCommand()
	require.NoError(t, runLoad(cmd, nil))
	assert.Contains(t, stderr.String(), "FILE LOAD")
	assert.Contains(t, stderr.String(), "Loaded: 1")
}

func TestRunLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		errorString string
	}{
		{
			name: "invalid format",
			setup: func() {
				loadRoot = "https://example.com/"
				loadFiles = []string{"a.js"}
				loadFormat = "xml"
			},
			errorString: "invalid --format",
		},
		{
			name: "missing root",
			setup: func() {
				loadFiles = []string{"a.js"}
			},
			errorString: "invalid load request",
		},
		{
			name: "only blank paths",
			setup: func() {
				loadRoot = "https://example.com/"
				loadFiles = []string{" ", ""}
			},
			errorString: "invalid load request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setup()

			cmd, _, _ := newTestCommand()
			err := runLoad(cmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		isolateEnv(t)
		assert.Nil(t, loadCredentials())
	})

	t.Run("flags override env", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(config.EnvToken, "env-token")
		t.Setenv(config.EnvRole, "env-role")
		loadToken = "flag-token"

		creds := loadCredentials()
		require.NotNil(t, creds)
		assert.Equal(t, "flag-token", creds.Token)
		assert.Equal(t, "env-role", creds.Role)
		assert.Empty(t, creds.Database)
	})
}

func TestCleanPaths(t *testing.T) {
	assert.Nil(t, cleanPaths(nil))
	assert.Equal(t, []string{"a.js", "b/c.ts"}, cleanPaths([]string{" a.js", "", "b/c.ts "}))
}
