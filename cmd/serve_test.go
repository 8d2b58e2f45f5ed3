//go:build !integration

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadfinder/internal/config"
)

// getFreePort returns a free TCP port on localhost.
func getFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close() //nolint:errcheck
	return port
}

func serveTestConfig() *config.Config {
	return &config.Config{
		Store:      config.StoreConfig{Driver: "memory"},
		Session:    config.SessionConfig{PoolSize: 36, PageSize: 10},
		Server:     config.ServerConfig{Port: 8080, RateLimit: 100, RateBurst: 100, CORSOrigins: []string{"*"}},
		Monitoring: config.MonitoringConfig{CheckIntervalSecs: 60},
		Log:        config.LogConfig{Level: "info", Format: "console"},
	}
}

func TestServeCmd_Lifecycle(t *testing.T) {
	oldCfg, oldPort := cfg, servePort
	defer func() { cfg, servePort = oldCfg, oldPort }()

	cfg = serveTestConfig()
	servePort = getFreePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveCmd.SetContext(ctx)
	defer serveCmd.SetContext(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- serveCmd.RunE(serveCmd, nil)
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", servePort)

	// Wait for server to be ready.
	var ready bool
	for range 100 {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close() //nolint:errcheck
			ready = true
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	resp, err := http.Get(base + "/search")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Contains(t, snap, "status")

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	cfg = serveTestConfig()
	cfg.Server.RateLimit = 0

	serveCmd.SetContext(context.Background())
	err := serveCmd.RunE(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.rate_limit")
}
