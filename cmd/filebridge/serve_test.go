package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/filebridge/internal/config"
)

func TestServerConfig(t *testing.T) {
	isolateEnv(t)

	cfg := &config.Config{Port: 9000, FileLoadRoot: "/files/", FetchTimeout: "5s", Verbose: true}
	srvCfg, err := serverConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 9000, srvCfg.Port)
	assert.Equal(t, "/files/", srvCfg.FileLoadRoot)
	assert.Equal(t, 5*time.Second, srvCfg.FetchTimeout)
	assert.True(t, srvCfg.Verbose)
}

func TestServerConfig_PortFlagWins(t *testing.T) {
	isolateEnv(t)
	servePort = 7070

	srvCfg, err := serverConfig(&config.Config{Port: 9000})
	require.NoError(t, err)
	assert.Equal(t, 7070, srvCfg.Port)
}

func TestServerConfig_Invalid(t *testing.T) {
	isolateEnv(t)

	_, err := serverConfig(&config.Config{Port: 0})
	assert.Error(t, err)

	_, err = serverConfig(&config.Config{Port: 8080, FetchTimeout: "soon"})
	assert.Error(t, err)
}
