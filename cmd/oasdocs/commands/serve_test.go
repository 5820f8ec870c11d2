package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupServeFlags(t *testing.T) {
	o, _, _ := testIO("")
	cfg := testConfig()
	cfg.Addr = ":8080"

	fs := SetupServeFlags(o, cfg)
	require.NoError(t, fs.Parse([]string{"-a", "127.0.0.1:9999", "--max-body", "2048", "--max-conns", "4", "--resolve-http"}))
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, int64(2048), cfg.MaxInlineSize)
	assert.Equal(t, 4, cfg.MaxConns)
	assert.True(t, cfg.ResolveHTTP)
}

func TestHandleServe_Errors(t *testing.T) {
	o, _, errOut := testIO("")
	require.NoError(t, HandleServe(context.Background(), o, testConfig(), []string{"--help"}))
	assert.Contains(t, errOut.String(), "/api/build")

	err := HandleServe(context.Background(), o, testConfig(), []string{"extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arguments")

	err = HandleServe(context.Background(), o, testConfig(), []string{"--base-dir", "/nonexistent/oasdocs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base-dir")
}

func TestHandleServe_StopsOnCancel(t *testing.T) {
	o, _, _ := testIO("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	assert.NoError(t, HandleServe(ctx, o, cfg, nil))
}

func TestHandleMCP_Help(t *testing.T) {
	o, _, errOut := testIO("")
	require.NoError(t, HandleMCP(context.Background(), o, testConfig(), []string{"--help"}))
	assert.Contains(t, errOut.String(), "Usage: oasdocs mcp")
}
